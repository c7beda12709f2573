package model

import (
	"os"
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const sampleLibrary = "../testdata/library.xml"

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
}

func mustElement(t *testing.T, xml string) *etree.Element {
	t.Helper()

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		t.Fatalf("read xml: %v", err)
	}
	if doc.Root() == nil {
		t.Fatalf("xml has no root element")
	}
	return doc.Root()
}

func mustDocument(t *testing.T, xml string) *etree.Document {
	t.Helper()

	doc, err := ReadDocument([]byte(xml))
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	return doc
}

func loadSampleLibrary(t *testing.T) *Library {
	t.Helper()

	data, err := os.ReadFile(sampleLibrary)
	if err != nil {
		t.Fatalf("read sample file: %v", err)
	}
	doc, err := ReadDocument(data)
	if err != nil {
		t.Fatalf("parse sample file: %v", err)
	}
	lib, err := ParseXML(doc, testLogger(t))
	if err != nil {
		t.Fatalf("ParseXML: %v", err)
	}
	return lib
}
