// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrInvalidCredentials は未登録の識別子、パスワード不一致、無効なアカウントのいずれでも返されます。
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound はIDでユーザーが見つからない場合に返されます。
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists は既に存在するメールアドレスでユーザーを作成しようとした場合に返されます。
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrFullNameAlreadyExists はログイン識別子であるフルネームが他のユーザーに使用されている場合に返されます。
	ErrFullNameAlreadyExists = errors.New("full name already exists")

	// ErrValidation はメール形式の誤りなど不正な入力をラップします。
	ErrValidation = errors.New("validation failed")

	// ErrForbidden は呼び出し元が対象ユーザーを操作できない場合に返されます。
	ErrForbidden = errors.New("forbidden")

	// ErrPersistence はストレージ層の失敗をラップします。リトライは行いません。
	ErrPersistence = errors.New("persistence failure")
)
