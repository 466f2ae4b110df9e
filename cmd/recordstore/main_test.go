package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	recordstorepb "github.com/recordstore-io/recordstore/api/recordstore/v1"
)

func TestParseSeeds(t *testing.T) {
	requests, err := parseSeeds([]string{"Ada, ada@example.com, 36", "Sam,sam@example.com,30"})
	require.NoError(t, err)
	require.Equal(t, []*recordstorepb.CreateRecordRequest{
		{Name: "Ada", Contact: "ada@example.com", Age: 36},
		{Name: "Sam", Contact: "sam@example.com", Age: 30},
	}, requests)
}

func TestParseSeedsAccumulatesErrors(t *testing.T) {
	_, err := parseSeeds([]string{"missing-fields", "Ada,ada@example.com,not-a-number"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing-fields")
	require.Contains(t, err.Error(), "parsing age")
}

func TestParseSeedsEmpty(t *testing.T) {
	requests, err := parseSeeds(nil)
	require.NoError(t, err)
	require.Empty(t, requests)
}
