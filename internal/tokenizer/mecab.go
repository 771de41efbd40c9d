package tokenizer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/starfeel/star/internal/model"
)

// probeText must tokenize to at least one token for a backend to be usable.
const probeText = "テスト"

// Mecab drives a long-lived mecab process over its standard pipes. It is not
// safe for concurrent use; Open wraps it in Locked.
type Mecab struct {
	path   string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	dead   bool
}

// NewMecab starts the mecab binary at path (or found on PATH when empty) and
// checks it with a probe tokenization.
func NewMecab(path string) (*Mecab, error) {
	if path == "" {
		path = "mecab"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("find mecab: %w", err)
	}

	cmd := exec.Command(resolved)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("mecab stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("mecab stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mecab: %w", err)
	}

	m := &Mecab{path: resolved, cmd: cmd, stdin: stdin, stdout: bufio.NewReader(stdout)}
	if len(m.Tokenize(probeText)) == 0 {
		_ = m.Close()
		return nil, errors.New("mecab probe tokenization returned no tokens")
	}
	return m, nil
}

func (m *Mecab) Available() bool { return m != nil && !m.dead }

// Tokenize sends one line to mecab and reads tokens up to EOS. Any pipe
// failure marks the process dead and yields nil from then on.
func (m *Mecab) Tokenize(text string) []model.Token {
	if !m.Available() {
		return nil
	}
	line := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, text)
	if strings.TrimSpace(line) == "" {
		return nil
	}

	if _, err := io.WriteString(m.stdin, line+"\n"); err != nil {
		m.dead = true
		return nil
	}

	var tokens []model.Token
	for {
		out, err := m.stdout.ReadString('\n')
		if err != nil {
			m.dead = true
			return nil
		}
		out = strings.TrimRight(out, "\r\n")
		if out == "EOS" {
			return tokens
		}
		if tok, ok := parseMecabLine(out); ok {
			tokens = append(tokens, tok)
		}
	}
}

// parseMecabLine reads one line of mecab's default output:
// surface TAB pos,pos1,pos2,pos3,conj,form,base,reading,pronunciation
func parseMecabLine(line string) (model.Token, bool) {
	surface, features, ok := strings.Cut(line, "\t")
	if !ok || surface == "" {
		return model.Token{}, false
	}
	tok := model.Token{Surface: surface}
	fields := strings.Split(features, ",")
	if fields[0] != "*" {
		tok.POS = fields[0]
	}
	if len(fields) > 6 && fields[6] != "*" {
		tok.BaseForm = fields[6]
	}
	return tok, true
}

func (m *Mecab) Name() string { return BackendMecab }

// Close ends the process by closing its input.
func (m *Mecab) Close() error {
	if m == nil || m.cmd == nil {
		return nil
	}
	m.dead = true
	_ = m.stdin.Close()
	err := m.cmd.Wait()
	m.cmd = nil
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}
