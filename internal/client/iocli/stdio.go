package iocli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio читает из файла ввода (обычно os.Stdin) и пишет в out
type Stdio struct {
	in     *os.File
	reader *bufio.Reader
	out    io.Writer
}

// NewStdio возвращает терминал поверх os.Stdin и os.Stdout
func NewStdio() IO {
	return NewFileIO(os.Stdin, os.Stdout)
}

// NewFileIO возвращает терминал поверх произвольного файла ввода
func NewFileIO(in *os.File, out io.Writer) *Stdio {
	return &Stdio{
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// ReadInput печатает prompt и читает одну строку без перевода строки
func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	return s.readLine()
}

// ReadPassword читает пароль без эха. Если ввод не терминал (pipe, скрипт),
// пароль читается обычной строкой.
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	s.Printf("%s", prompt)

	fd := int(s.in.Fd())
	if !term.IsTerminal(fd) {
		return s.readLine()
	}

	pw, err := term.ReadPassword(fd)
	s.Println("")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

func (s *Stdio) readLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		// последняя строка без '\n' тоже считается вводом
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
