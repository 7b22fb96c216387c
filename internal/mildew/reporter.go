package mildew

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter defines the interface for structures that can display errors
// to the user. A reporter is defined to separate error reporting code
// from error displaying code. Fully-featured languages have a complex
// setup for reporting errors to the user.
type Reporter interface {
	Report(err error)
	HadError() bool
	Reset()
}

// SimpleReporter writes each error as-is to the inner writer.
type SimpleReporter struct {
	writer io.Writer
	hadErr bool
}

func NewSimpleReporter(writer io.Writer) Reporter {
	return &SimpleReporter{writer, false}
}

func (reporter *SimpleReporter) Report(err error) {
	reporter.hadErr = true
	fmt.Fprintln(reporter.writer, err)
}

func (reporter *SimpleReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *SimpleReporter) Reset() {
	reporter.hadErr = false
}

// ColorReporter writes errors in red to the inner writer, for the
// interactive prompt.
type ColorReporter struct {
	writer io.Writer
	paint  *color.Color
	hadErr bool
}

func NewColorReporter(writer io.Writer) Reporter {
	return &ColorReporter{writer: writer, paint: color.New(color.FgRed)}
}

func (reporter *ColorReporter) Report(err error) {
	reporter.hadErr = true
	reporter.paint.Fprintln(reporter.writer, err)
}

func (reporter *ColorReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *ColorReporter) Reset() {
	reporter.hadErr = false
}
