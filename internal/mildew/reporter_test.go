package mildew

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestSimpleReporterInit(t *testing.T) {
	r := NewSimpleReporter(io.Discard)
	assert.False(t, r.HadError())
}

func TestSimpleReporterSendErrors(t *testing.T) {
	assert := assert.New(t)
	err1 := errors.New("first error")
	err2 := errors.New("second error")

	var out strings.Builder
	r := NewSimpleReporter(&out)
	r.Report(err1)
	r.Report(err2)

	assert.Equal(fmt.Sprintf("%v\n%v\n", err1, err2), out.String())
	assert.True(r.HadError())
}

func TestSimpleReporterReset(t *testing.T) {
	r := NewSimpleReporter(io.Discard)
	r.Report(errors.New("some error"))
	r.Reset()
	assert.False(t, r.HadError())
}

func TestColorReporter(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var out strings.Builder
	r := NewColorReporter(&out)
	r.Report(errors.New("tinted error"))
	assert.Contains(t, out.String(), "tinted error")
	assert.True(t, r.HadError())
	r.Reset()
	assert.False(t, r.HadError())
}
