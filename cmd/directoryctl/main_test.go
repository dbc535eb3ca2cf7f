package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/kailas-cloud/provdir/internal/domain/search/request"
)

func runSearchFlags(t *testing.T, args ...string) request.Params {
	t.Helper()
	var got request.Params
	a := &cli.App{
		Name: "directoryctl",
		Commands: []*cli.Command{{
			Name:  "search",
			Flags: searchFlags(),
			Action: func(c *cli.Context) error {
				got = paramsFromFlags(c)
				return nil
			},
		}},
	}
	if err := a.Run(append([]string{"directoryctl", "search"}, args...)); err != nil {
		t.Fatalf("run: %v", err)
	}
	return got
}

func TestParamsFromFlags(t *testing.T) {
	p := runSearchFlags(t,
		"--state", "NJ", "--mode", "in_home", "--mode", "telehealth",
		"--insurance", "Aetna", "--lat", "40.7", "--lng", "-74.1",
		"--accepting=false", "--page", "2", "--limit", "5",
	)

	if p.State != "NJ" || p.Page != 2 || p.Limit != 5 {
		t.Errorf("params = %+v", p)
	}
	if len(p.ServiceModes) != 2 || p.ServiceModes[1] != "telehealth" {
		t.Errorf("modes = %v", p.ServiceModes)
	}
	if p.UserLat == nil || *p.UserLat != 40.7 || p.UserLng == nil || *p.UserLng != -74.1 {
		t.Errorf("coordinates = %v, %v", p.UserLat, p.UserLng)
	}
	if p.AcceptingClients == nil || *p.AcceptingClients {
		t.Errorf("accepting = %v, want explicit false", p.AcceptingClients)
	}
	if p.RadiusMiles != nil {
		t.Errorf("radius should be unset, got %v", *p.RadiusMiles)
	}
}

func TestParamsFromFlags_Defaults(t *testing.T) {
	p := runSearchFlags(t)

	if p.Page != 1 || p.Limit != 0 {
		t.Errorf("page=%d limit=%d", p.Page, p.Limit)
	}
	if p.AcceptingClients != nil || p.UserLat != nil || p.UserLng != nil {
		t.Error("optional flags should be nil when unset")
	}
}

func TestSeedRequiresFile(t *testing.T) {
	var out bytes.Buffer
	a := newApp(&out)
	a.Writer, a.ErrWriter = &out, &out

	err := a.Run([]string{"directoryctl", "seed"})
	if err == nil || !strings.Contains(err.Error(), "file") {
		t.Fatalf("err = %v, want missing --file", err)
	}
}

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer
	if err := printJSON(&out, map[string]int{"places": 3}); err != nil {
		t.Fatalf("printJSON: %v", err)
	}
	if got := out.String(); got != "{\n  \"places\": 3\n}\n" {
		t.Errorf("output = %q", got)
	}
}
