package tokenizer

import (
	"context"
	"log"
	"os/exec"
	"regexp"
	"runtime/debug"
	"strings"
	"time"
)

// DependencyChecker reports which tokenizer backends can be acquired.
type DependencyChecker struct {
	debug     bool
	mecabPath string
}

// NewDependencyChecker creates a checker. mecabPath may be empty to search PATH.
func NewDependencyChecker(debug bool, mecabPath string) *DependencyChecker {
	return &DependencyChecker{debug: debug, mecabPath: mecabPath}
}

// DependencyStatus represents the status of one backend
type DependencyStatus struct {
	Name      string `json:"name" yaml:"name"`
	Installed bool   `json:"installed" yaml:"installed"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Probe checks every backend with default settings.
func Probe(opts Options) []DependencyStatus {
	return NewDependencyChecker(opts.Debug, opts.MecabPath).CheckAll()
}

// CheckAll checks every backend in auto-selection order.
func (d *DependencyChecker) CheckAll() []DependencyStatus {
	return []DependencyStatus{
		d.CheckKagome(),
		d.CheckMecab(),
		{Name: BackendNone, Installed: true, Message: "keyword-only mode"},
	}
}

// CheckKagome loads the embedded dictionary and runs a probe tokenization.
func (d *DependencyChecker) CheckKagome() DependencyStatus {
	status := DependencyStatus{
		Name:    BackendKagome,
		Version: moduleVersion("github.com/ikawaha/kagome/v2"),
	}

	k, err := NewKagome()
	if err != nil {
		status.Message = err.Error()
		return status
	}
	if len(k.Tokenize(probeText)) == 0 {
		status.Message = "probe tokenization returned no tokens"
		return status
	}
	status.Installed = true
	return status
}

// CheckMecab checks the mecab binary and its dictionary.
func (d *DependencyChecker) CheckMecab() DependencyStatus {
	status := DependencyStatus{Name: BackendMecab}

	name := d.mecabPath
	if name == "" {
		name = "mecab"
	}
	path, err := exec.LookPath(name)
	if err != nil {
		status.Message = "mecab is not installed"
		return status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	output, err := exec.CommandContext(ctx, path, "--version").Output()
	if err == nil {
		status.Version = strings.TrimSpace(string(output))
		// "mecab of 0.996"
		if re := regexp.MustCompile(`\d+\.\d+(\.\d+)?`); re.Match(output) {
			status.Version = re.FindString(string(output))
		}
	} else if d.debug {
		log.Printf("[deps] mecab --version: %v", err)
	}

	m, err := NewMecab(path)
	if err != nil {
		status.Message = err.Error()
		return status
	}
	_ = m.Close()
	status.Installed = true
	return status
}

func moduleVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, dep := range info.Deps {
		if dep.Path == path {
			return dep.Version
		}
	}
	return ""
}
