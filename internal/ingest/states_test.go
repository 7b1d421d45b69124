package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ldexchange/jobboard/internal/ingest"
)

func TestParseState(t *testing.T) {
	for _, s := range []string{
		"PENDING", "FETCHED", "DEDUPED", "VALIDATED", "TAGGED", "PERSISTED",
		"SKIPPED_DUPLICATE", "SKIPPED_INVALID", "SKIPPED_BOUNCER",
	} {
		got, err := ingest.ParseState(s)
		assert.NoError(t, err, s)
		assert.Equal(t, s, string(got))
	}

	_, err := ingest.ParseState("")
	assert.Error(t, err)
	_, err = ingest.ParseState("persisted")
	assert.Error(t, err)
}

func TestIsTransitionAllowed_Valid(t *testing.T) {
	cases := []struct{ from, to ingest.State }{
		{ingest.StatePending, ingest.StateFetched},
		{ingest.StateFetched, ingest.StateDeduped},
		{ingest.StateFetched, ingest.StateSkippedDuplicate},
		{ingest.StateDeduped, ingest.StateValidated},
		{ingest.StateDeduped, ingest.StateSkippedInvalid},
		{ingest.StateValidated, ingest.StateTagged},
		{ingest.StateValidated, ingest.StateSkippedBouncer},
		{ingest.StateTagged, ingest.StatePersisted},
		{ingest.StateTagged, ingest.StateSkippedDuplicate},
	}
	for _, c := range cases {
		assert.True(t, ingest.IsTransitionAllowed(c.from, c.to), "%s → %s", c.from, c.to)
	}
}

func TestIsTransitionAllowed_Invalid(t *testing.T) {
	cases := []struct{ from, to ingest.State }{
		{ingest.StatePending, ingest.StatePersisted},
		{ingest.StateFetched, ingest.StateTagged},
		{ingest.StateFetched, ingest.StateSkippedBouncer},
		{ingest.StateDeduped, ingest.StateSkippedBouncer},
		{ingest.StateValidated, ingest.StatePersisted},
		{ingest.StatePersisted, ingest.StateFetched},
		{ingest.StateSkippedInvalid, ingest.StateValidated},
		{ingest.StateTagged, ingest.StateTagged},
	}
	for _, c := range cases {
		assert.False(t, ingest.IsTransitionAllowed(c.from, c.to), "%s → %s", c.from, c.to)
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []ingest.State{
		ingest.StatePersisted, ingest.StateSkippedDuplicate,
		ingest.StateSkippedInvalid, ingest.StateSkippedBouncer,
	}
	for _, s := range terminal {
		assert.True(t, ingest.IsTerminal(s), s)
	}
	for _, s := range []ingest.State{
		ingest.StatePending, ingest.StateFetched, ingest.StateDeduped,
		ingest.StateValidated, ingest.StateTagged,
	} {
		assert.False(t, ingest.IsTerminal(s), s)
	}
}
