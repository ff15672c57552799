// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

import (
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/santhosh-tekuri/dom"
	"golang.org/x/net/html/charset"
)

// Loader resolves file references to parsed documents. Documents are cached
// by cleaned path, so two doc("f") references inside one query share node
// identity. A Loader is not safe for concurrent use; give each evaluation
// its own, or hold one per goroutine.
type Loader struct {
	// Dir is the base directory for relative file references.
	// Empty means the process working directory.
	Dir string

	// Logger receives debug-level load and cache-hit events.
	Logger hclog.Logger

	docs map[string]*dom.Document
}

// NewLoader returns a Loader logging to the given logger.
// A nil logger discards all output.
func NewLoader(logger hclog.Logger) *Loader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Loader{Logger: logger, docs: make(map[string]*dom.Document)}
}

// Load parses the referenced XML file and returns the root element of its
// document. It fails with *LoadError if the file cannot be read and with
// *ParseError if its contents are not well-formed XML.
func (l *Loader) Load(file string) (dom.Node, error) {
	doc, err := l.Document(file)
	if err != nil {
		return nil, err
	}
	for _, c := range doc.Children() {
		if _, ok := c.(*dom.Element); ok {
			return c, nil
		}
	}
	return nil, &ParseError{Src: file, Err: errors.New("document has no root element")}
}

// Document returns the parsed document for the referenced file, loading it
// on first use.
func (l *Loader) Document(file string) (*dom.Document, error) {
	key := file
	if l.Dir != "" && !filepath.IsAbs(file) {
		key = filepath.Join(l.Dir, file)
	}
	key = filepath.Clean(key)

	if l.docs == nil {
		l.docs = make(map[string]*dom.Document)
	}
	if doc, ok := l.docs[key]; ok {
		l.logger().Debug("document cache hit", "file", key)
		return doc, nil
	}

	f, err := os.Open(key)
	if err != nil {
		return nil, &LoadError{File: file, Err: err}
	}
	defer f.Close()

	decoder := xml.NewDecoder(f)
	decoder.CharsetReader = charset.NewReaderLabel
	doc, err := dom.Unmarshal(decoder)
	if err != nil {
		return nil, &ParseError{Src: file, Err: err}
	}
	l.docs[key] = doc
	l.logger().Debug("document loaded", "file", key)
	return doc, nil
}

func (l *Loader) logger() hclog.Logger {
	if l.Logger == nil {
		return hclog.NewNullLogger()
	}
	return l.Logger
}

// root is the panicking form of Load, for use inside the evaluator.
func (l *Loader) root(file string) dom.Node {
	n, err := l.Load(file)
	if err != nil {
		panic(err)
	}
	return n
}
