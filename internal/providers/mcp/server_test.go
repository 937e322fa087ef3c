package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/internal/risk"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdvisor struct {
	last advisor.Query
}

func (s *stubAdvisor) Advise(ctx context.Context, q advisor.Query) (*advisor.Response, error) {
	s.last = q
	if q.Text == "" {
		return nil, core.NewInvalidInput("text", "must not be empty")
	}
	return &advisor.Response{Narrative: "Start with an index fund.", CitedChunks: []string{"doc_4"}}, nil
}

func TestToolNames(t *testing.T) {
	s := NewServer(&stubAdvisor{}, "INR")
	assert.Equal(t, []string{"budget_plan", "finance_advice", "risk_profile", "sip_projection"}, s.ToolNames())

	for _, name := range s.ToolNames() {
		var schema map[string]any
		require.NoError(t, json.Unmarshal([]byte(s.tools[name].Schema), &schema), name)
		assert.Equal(t, "object", schema["type"])
	}
}

func TestSIPProjection(t *testing.T) {
	s := NewServer(&stubAdvisor{}, "INR")
	out, err := s.Call(context.Background(), "sip_projection",
		json.RawMessage(`{"monthly_contribution": 5000, "annual_rate_percent": 12, "years": 10}`))
	require.NoError(t, err)
	assert.Contains(t, out, "Invested: INR 600,000.00")
	assert.Contains(t, out, "Final value: INR 1,161,69")

	_, err = s.Call(context.Background(), "sip_projection",
		json.RawMessage(`{"monthly_contribution": 5000, "annual_rate_percent": -1, "years": 10}`))
	assert.True(t, core.IsInvalidInput(err))
}

func TestSIPProjection_PeriodsPerYear(t *testing.T) {
	s := NewServer(&stubAdvisor{}, "INR")
	out, err := s.Call(context.Background(), "sip_projection",
		json.RawMessage(`{"monthly_contribution": 1000, "annual_rate_percent": 10, "years": 2, "periods_per_year": 1}`))
	require.NoError(t, err)
	assert.Contains(t, out, "Final value: INR 27,720.00")
	assert.Contains(t, out, "Invested: INR 24,000.00")
}

func TestRiskProfile(t *testing.T) {
	s := NewServer(&stubAdvisor{}, "INR")
	out, err := s.Call(context.Background(), "risk_profile", json.RawMessage(`{"answers": [2, 2, 3, 1, 2]}`))
	require.NoError(t, err)
	assert.Contains(t, out, "Profile: Conservative (score 22 of 50)")
	assert.Contains(t, out, "70% Debt funds and fixed deposits")
}

func TestBudgetPlan(t *testing.T) {
	s := NewServer(&stubAdvisor{}, "INR")
	out, err := s.Call(context.Background(), "budget_plan", json.RawMessage(`{"monthly_income": 80000}`))
	require.NoError(t, err)

	var plan map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, "16000", plan["savings"])
}

func TestFinanceAdvice(t *testing.T) {
	adv := &stubAdvisor{}
	s := NewServer(adv, "INR")

	out, err := s.Call(context.Background(), "finance_advice",
		json.RawMessage(`{"question": "Where do I start?", "profile": "low"}`))
	require.NoError(t, err)
	assert.Equal(t, "Start with an index fund.\n\nSources: doc_4", out)
	require.NotNil(t, adv.last.Profile)
	assert.Equal(t, risk.Conservative, *adv.last.Profile)

	_, err = s.Call(context.Background(), "finance_advice", json.RawMessage(`{"question": "x", "profile": "yolo"}`))
	assert.Error(t, err)
}

func TestCallUnknownTool(t *testing.T) {
	_, err := NewServer(&stubAdvisor{}, "INR").Call(context.Background(), "shell", nil)
	assert.True(t, core.IsInvalidInput(err))
}

func TestWrap_ReportsToolErrors(t *testing.T) {
	s := NewServer(&stubAdvisor{}, "INR")
	h := s.wrap("failing", func(ctx context.Context, args json.RawMessage) (string, error) {
		return "", errors.New("boom")
	})

	req := mcp.CallToolRequest{}
	req.Params.Name = "failing"
	req.Params.Arguments = map[string]any{"x": 1}

	res, err := h(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "boom", text.Text)
}
