package main

import (
	"fmt"
	"io"

	"github.com/go-faster/errors"
	"github.com/k0kubun/pp/v3"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/mt"
	"github.com/gramkit/gram/proto/codec"
	"github.com/gramkit/gram/tmap"
)

type formatter func(w io.Writer, v interface{}) error

func formats(name string) formatter {
	switch name {
	case "go":
		return func(w io.Writer, v interface{}) error {
			_, err := fmt.Fprintf(w, "%#v\n", v)
			return err
		}
	default:
		return func(w io.Writer, v interface{}) error {
			_, err := pp.Fprintln(w, v)
			return err
		}
	}
}

// Printer reads framed TL objects and prints them one per frame.
type Printer struct {
	src    io.Reader
	format formatter
	codec  codec.Codec
	types  *tmap.Constructor
}

// NewPrinter creates new Printer reading frames from src.
func NewPrinter(src io.Reader, format formatter, c codec.Codec) Printer {
	return Printer{
		src:    src,
		format: format,
		codec:  c,
		types:  tmap.NewConstructor(mt.TypesConstructorMap()),
	}
}

// Print reads frames until EOF, writing decoded objects to out.
func (p Printer) Print(out io.Writer) error {
	b := &bin.Buffer{}
	for {
		b.Reset()
		if err := p.codec.Read(p.src, b); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "read frame")
		}

		id, err := b.PeekID()
		if err != nil {
			return errors.Wrap(err, "peek id")
		}
		obj := p.types.New(id)
		if obj == nil {
			if _, err := fmt.Fprintf(out, "unknown constructor %#x: %x\n", id, b.Buf); err != nil {
				return err
			}
			continue
		}
		if err := obj.Decode(b); err != nil {
			return errors.Wrapf(err, "decode %#x", id)
		}
		if err := p.format(out, obj); err != nil {
			return errors.Wrap(err, "print")
		}
	}
}
