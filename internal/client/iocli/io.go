package iocli

//go:generate moq -out io_mock.go . IO

// IO абстрагирует терминал для CLI команд
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	// IsTerminal сообщает, подключён ли stdin к терминалу
	IsTerminal() bool
	Write(p []byte) (n int, err error)
}
