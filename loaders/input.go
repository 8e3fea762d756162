package loaders

import (
	"errors"
	"io"
)

var (
	ErrNoFilename = errors.New("no file name given")
	ErrEmptyTape  = errors.New("empty initial tape")
)

// Prompter reads the answers to the interactive prompts from one input.
type Prompter struct {
	lines *LineReader
	out   io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		lines: NewLineReader(in, InputLineMax),
		out:   out,
	}
}

func (p *Prompter) ask(prompt string) (string, error) {
	if p.out != nil {
		if _, err := io.WriteString(p.out, prompt+"\n"); err != nil {
			return "", err
		}
	}
	line, err := p.lines.ReadLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}

func (p *Prompter) Filename() (string, error) {
	name, err := p.ask("Enter file name:")
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", ErrNoFilename
	}
	return name, nil
}

// Tape returns the initial tape line as typed; blanks are mapped when the tape is loaded.
func (p *Prompter) Tape() (string, error) {
	line, err := p.ask("Enter initial tape state:")
	if err != nil {
		return "", err
	}
	if line == "" {
		return "", ErrEmptyTape
	}
	return line, nil
}
