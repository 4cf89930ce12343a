package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_TTY(t *testing.T) {
	var buf bytes.Buffer
	p := &Progress{w: &buf, label: "Importing", total: 10, isTTY: true}

	p.Increment()
	p.Print()
	assert.Equal(t, "\rImporting... 1/10 (10%)", buf.String())
	assert.Equal(t, 1, p.Current())

	buf.Reset()
	p.Done()
	assert.Equal(t, "\r"+strings.Repeat(" ", len("Importing... 1/10 (10%)"))+"\r", buf.String())
}

func TestProgress_Quiet(t *testing.T) {
	var buf bytes.Buffer

	small := &Progress{w: &buf, label: "Importing", total: minItems - 1, isTTY: true}
	small.Increment()
	small.Print()
	small.Done()

	pipe := &Progress{w: &buf, label: "Importing", total: 100}
	pipe.Increment()
	pipe.Print()
	pipe.Done()

	assert.Empty(t, buf.String())
}

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := &Spinner{w: &buf, label: "Vacuuming", isTTY: true}
	s.Start()
	s.Tick()
	s.Stop()
	assert.Contains(t, buf.String(), "⠋ Vacuuming...")
	assert.Contains(t, buf.String(), "\r⠙ Vacuuming...")

	buf.Reset()
	quiet := &Spinner{w: &buf, label: "Vacuuming"}
	quiet.Start()
	quiet.Tick()
	quiet.Stop()
	assert.Empty(t, buf.String())
}
