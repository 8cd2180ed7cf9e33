package main

import (
	"reflect"
	"testing"
)

func TestStat(t *testing.T) {
	tmp := STAT_CMD
	STAT_CMD = func() (string, []string) {
		return "cat", []string{
			"testfiles/qstat.dat",
		}
	}
	defer func() {
		STAT_CMD = tmp
	}()
	got := map[string]bool{
		"12345.pbsserver":      true,
		"12346.pbsserver":      true,
		"12347.pbsserver":      true,
		"12348.pbsserver":      true,
		"1234567890.pbsserver": false,
	}
	if err := Stat(got); err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{
		"12345.pbsserver":      true,
		"12346.pbsserver":      true,
		"12347.pbsserver":      false,
		"12348.pbsserver":      false,
		"1234567890.pbsserver": true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestStatFail(t *testing.T) {
	tmp := STAT_CMD
	STAT_CMD = func() (string, []string) {
		return "false", nil
	}
	defer func() {
		STAT_CMD = tmp
	}()
	if err := Stat(map[string]bool{"1.pbs": true}); err == nil {
		t.Error("expected an error from a failing qstat")
	}
}

func TestStatTruncatedPrefix(t *testing.T) {
	tmp := STAT_CMD
	STAT_CMD = func() (string, []string) {
		return "cat", []string{
			"testfiles/qstat.dat",
		}
	}
	defer func() {
		STAT_CMD = tmp
	}()
	// both ids print as 1234567890.pbsse*
	got := map[string]bool{
		"1234567890.pbsserver":  false,
		"1234567890.pbsserver2": false,
	}
	if err := Stat(got); err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{
		"1234567890.pbsserver":  true,
		"1234567890.pbsserver2": true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}
