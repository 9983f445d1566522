package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_DefaultCaseID(t *testing.T) {
	s := MustCompile(DefaultRules())
	text := "Ticket summary\nCase ID: 12345\nStatus: open"

	for _, q := range []string{"CaseId", "case id", "Case_Id", "case-id", "find caseid please", "CASEID"} {
		term, ok := s.Match(q, text)
		assert.True(t, ok, "query %q", q)
		assert.Equal(t, "case id", term)
	}
}

func TestMatch_TextForms(t *testing.T) {
	s := MustCompile(DefaultRules())

	for _, text := range []string{"caseid=1", "Case ID 7", "case_id: 9", "CASE-ID"} {
		_, ok := s.Match("caseid", text)
		assert.True(t, ok, "text %q", text)
	}
}

func TestMatch_NoIntentOrNoHit(t *testing.T) {
	s := MustCompile(DefaultRules())

	_, ok := s.Match("case study", "Case ID: 1")
	assert.False(t, ok, "query without identifier intent")

	_, ok = s.Match("caseid", "a showcase identity")
	assert.False(t, ok, "substring inside other words must not match")

	_, ok = s.Match("caseid", "")
	assert.False(t, ok)
}

func TestCompile_CustomRules(t *testing.T) {
	s, err := Compile([]Rule{
		{Term: "order number", Variants: []string{"order no"}},
		{Term: "SKU"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	term, ok := s.Match("OrderNumber", "Order No 55")
	assert.True(t, ok)
	assert.Equal(t, "order number", term)

	term, ok = s.Match("sku", "SKU-123")
	assert.True(t, ok)
	assert.Equal(t, "sku", term)
}

func TestCompile_EmptyTerm(t *testing.T) {
	_, err := Compile([]Rule{{Term: "  "}})
	assert.Error(t, err)
}

func TestNilSet(t *testing.T) {
	var s *Set
	_, ok := s.Match("caseid", "caseid")
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}
