// Package iocli изолирует ввод-вывод терминала, чтобы команды клиента можно было тестировать.
package iocli

// IO - терминал, с которым работают команды клиента
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}
