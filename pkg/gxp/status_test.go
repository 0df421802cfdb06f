package gxp

import (
	"bytes"
	"testing"
)

func TestCheckStatusSuccessWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	ok := FprintCheckStatus(&buf, CommOK, OK())
	if !ok {
		t.Fatalf("expected success classification")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output on success, got %q", buf.String())
	}
}

func TestCheckStatusCommFailure(t *testing.T) {
	var buf bytes.Buffer
	ok := FprintCheckStatus(&buf, CommFailure, OK())
	if ok {
		t.Fatalf("expected failure classification")
	}
	want := " >> ERROR <<\n" +
		"Communication Error: 0x80004005\n" +
		"GXP Error: 0x00000000\n" +
		"\n\n"
	if buf.String() != want {
		t.Fatalf("wrong diagnostic block:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestCheckStatusApiFailureWithMessage(t *testing.T) {
	var buf bytes.Buffer
	api := ApiStatus{Code: -0x7FFF0001, Message: "workstation rejected session"}
	ok := FprintCheckStatus(&buf, CommOK, api)
	if ok {
		t.Fatalf("expected failure classification")
	}
	want := " >> ERROR <<\n" +
		"Communication Error: 0x00000000\n" +
		"GXP Error: 0x8000ffff\n" +
		"GXP Error: workstation rejected session\n" +
		"\n\n"
	if buf.String() != want {
		t.Fatalf("wrong diagnostic block:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestCheckStatusEmptyMessageOmitsTextLine(t *testing.T) {
	var buf bytes.Buffer
	FprintCheckStatus(&buf, CommOK, ApiStatus{Code: -1})
	want := " >> ERROR <<\n" +
		"Communication Error: 0x00000000\n" +
		"GXP Error: 0xffffffff\n" +
		"\n\n"
	if buf.String() != want {
		t.Fatalf("wrong diagnostic block:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestCheckStatusBothFail(t *testing.T) {
	var buf bytes.Buffer
	ok := FprintCheckStatus(&buf, CommFailure, ApiStatus{Code: -2})
	if ok {
		t.Fatalf("expected failure classification")
	}
	want := " >> ERROR <<\n" +
		"Communication Error: 0x80004005\n" +
		"GXP Error: 0xfffffffe\n" +
		"\n\n"
	if buf.String() != want {
		t.Fatalf("wrong diagnostic block:\ngot  %q\nwant %q", buf.String(), want)
	}
}
