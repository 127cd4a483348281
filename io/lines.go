// Package io provides the line source and line sink for munin program text.
package io

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"strings"
)

// COMMENT_MARKER starts a comment line.
const COMMENT_MARKER = ";"

// ReadLines reads all lines from r, dropping comment lines.
func ReadLines(r io.Reader) (lines []string, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, COMMENT_MARKER) {
			continue
		}
		lines = append(lines, line)
	}

	err = scanner.Err()
	return
}

// ReadFS reads all non-comment lines of a file in fsys.
func ReadFS(fsys fs.FS, name string) (lines []string, err error) {
	file, err := fsys.Open(name)
	if err != nil {
		return
	}
	defer file.Close()

	lines, err = ReadLines(file)
	return
}

// ReadFile reads all non-comment lines of a file.
func ReadFile(path string) (lines []string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	lines, err = ReadLines(file)
	return
}

// WriteLines writes each line to w, newline terminated.
func WriteLines(w io.Writer, lines []string) (err error) {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		_, err = bw.WriteString(line + "\n")
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}

// WriteFile creates or truncates a file, and writes the lines to it.
func WriteFile(path string, lines []string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		_err := file.Close()
		if err == nil {
			err = _err
		}
	}()

	err = WriteLines(file, lines)
	return
}
