package education

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokercoach/internal/deck"
)

const (
	defaultAPIURL  = "https://api.anthropic.com/v1/messages"
	defaultModel   = "claude-3-5-sonnet-20241022"
	defaultTimeout = 15 * time.Second
	apiVersion     = "2023-06-01"
)

// RemoteGraderOptions configures the remote tutor.
type RemoteGraderOptions struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
	Clock   quartz.Clock
	Logger  *log.Logger
}

// RemoteGrader grades answers through a reasoning model behind a messages
// API. Every call is bounded by a timeout; on any error or timeout the
// verdict degrades to the local numeric grading with an informational note,
// so the game loop always proceeds.
type RemoteGrader struct {
	apiKey  string
	apiURL  string
	model   string
	timeout time.Duration
	clock   quartz.Clock
	client  *http.Client
	logger  *log.Logger
	local   *LocalGrader
}

// NewRemoteGrader builds a RemoteGrader, filling unset options with defaults.
func NewRemoteGrader(opts RemoteGraderOptions) *RemoteGrader {
	if opts.APIURL == "" {
		opts.APIURL = defaultAPIURL
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &RemoteGrader{
		apiKey:  opts.APIKey,
		apiURL:  opts.APIURL,
		model:   opts.Model,
		timeout: opts.Timeout,
		clock:   opts.Clock,
		client:  &http.Client{},
		logger:  opts.Logger,
		local:   NewLocalGrader(),
	}
}

// Grade asks the model to evaluate the answer, judge its own evaluation, and
// return a JSON verdict. Failures fall back to local numeric grading.
func (g *RemoteGrader) Grade(ctx context.Context, q Question, answer string) (Verdict, error) {
	prompt := g.buildGradePrompt(q, answer)

	text, err := g.complete(ctx, "", []ChatTurn{{Role: "user", Content: prompt}})
	if err != nil {
		g.logger.Warn("remote grading unavailable, using numeric grading", "error", err)
		verdict, _ := g.local.Grade(ctx, q, answer)
		verdict.Feedback += " (tutor unavailable; graded numerically)"
		return verdict, nil
	}

	verdict, ok := parseVerdict(text)
	if !ok {
		g.logger.Warn("remote grader returned unparseable verdict")
		fallback, _ := g.local.Grade(ctx, q, answer)
		fallback.Reasoning = text
		return fallback, nil
	}
	return verdict, nil
}

// Chat continues a tutor conversation about the question's board state.
func (g *RemoteGrader) Chat(ctx context.Context, q Question, transcript []ChatTurn) (string, error) {
	return g.complete(ctx, g.buildChatSystem(q), transcript)
}

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system,omitempty"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// complete performs one messages-API round trip with a clock-bounded timeout.
func (g *RemoteGrader) complete(ctx context.Context, system string, turns []ChatTurn) (string, error) {
	messages := make([]apiMessage, len(turns))
	for i, t := range turns {
		messages[i] = apiMessage{Role: t.Role, Content: t.Content}
	}

	body, err := json.Marshal(apiRequest{
		Model:     g.model,
		MaxTokens: 2000,
		System:    system,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	timer := g.clock.AfterFunc(g.timeout, cancel)
	defer timer.Stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tutor request: %w", err)
	}
	defer resp.Body.Close()

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if decoded.Error != nil {
			return "", fmt.Errorf("tutor API: %s", decoded.Error.Message)
		}
		return "", fmt.Errorf("tutor API: status %d", resp.StatusCode)
	}
	if len(decoded.Content) == 0 {
		return "", fmt.Errorf("tutor API: empty response")
	}
	return decoded.Content[0].Text, nil
}

func (g *RemoteGrader) buildGradePrompt(q Question, answer string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a poker professor evaluating a student's answer about %s.\n\n",
		strings.ToUpper(strings.ReplaceAll(q.Type.String(), "_", " ")))

	fmt.Fprintf(&b, "CONTEXT:\n")
	if len(q.Hole) > 0 {
		fmt.Fprintf(&b, "- Player's hand: %s\n", cardList(q.Hole))
	}
	if len(q.Board) > 0 {
		fmt.Fprintf(&b, "- Community cards: %s\n", cardList(q.Board))
	}
	if q.Stage != "" {
		fmt.Fprintf(&b, "- Stage: %s\n", q.Stage)
	}

	switch q.Type {
	case PotOdds:
		fmt.Fprintf(&b, "- Pot size: $%d\n- Amount to call: $%d\n\n", q.Pot, q.CallAmount)
		fmt.Fprintf(&b, "QUESTION: What are the pot odds? (Format: X:1)\n\n")
		fmt.Fprintf(&b, "CORRECT ANSWER: %s\nCalculation: %d / %d = %.2f:1\n",
			q.CorrectRatio, q.Pot, q.CallAmount, q.CorrectRatio.Value)
	case Outs:
		fmt.Fprintf(&b, "\nQUESTION: How many outs do you have?\n\n")
		fmt.Fprintf(&b, "CALCULATED OUTS (by simple counting): %d\n", q.CorrectOuts)
		if q.OutsDetail != nil {
			fmt.Fprintf(&b, "Breakdown:\n%s\n", q.OutsDetail.Display())
		}
	case WinOdds:
		fmt.Fprintf(&b, "- Total outs: %d\n- Unknown cards remaining: %d\n\n", q.CorrectOuts, q.UnseenCount)
		fmt.Fprintf(&b, "QUESTION: What are your odds to win? (Format: X:1)\n\n")
		fmt.Fprintf(&b, "CORRECT ANSWER: %s\nCalculation: (%d - %d) / %d = %.2f:1\n",
			q.CorrectRatio, q.UnseenCount, q.CorrectOuts, q.CorrectOuts, q.CorrectRatio.Value)
	}

	fmt.Fprintf(&b, "\nSTUDENT'S ANSWER: %q\n\n", answer)
	fmt.Fprintf(&b, `TASK:
1. Extract the number or ratio from the student's answer (may include math like "3+4")
2. Check if the calculation is correct (allow small rounding differences)
3. If they gave reasoning about opponent hands, judge whether it is sound —
   a card that improves an opponent's hand more than yours is not a clean out
4. Give concise feedback that teaches the concept

Respond with ONLY a JSON object:
{"is_correct": true or false, "feedback": "brief feedback to the student", "reasoning": "your detailed reasoning"}`)
	return b.String()
}

func (g *RemoteGrader) buildChatSystem(q Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a helpful poker professor. The student just answered questions about this situation:\n\n")
	fmt.Fprintf(&b, "Player's hand: %s\nCommunity cards: %s\nStage: %s\n",
		cardList(q.Hole), cardList(q.Board), q.Stage)
	if q.OutsDetail != nil {
		fmt.Fprintf(&b, "\nAvailable outs:\n%s\n", q.OutsDetail.Display())
	}
	fmt.Fprintf(&b, "\nAnswer questions about poker strategy, outs, odds and hand evaluation. Be concise but thorough.\n")
	fmt.Fprintf(&b, "Remember: the opponent's possible hands matter when counting outs!")
	return b.String()
}

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

// parseVerdict extracts the verdict JSON from model output, which may be
// wrapped in markdown fences or prose.
func parseVerdict(text string) (Verdict, bool) {
	raw := jsonObject.FindString(text)
	if raw == "" {
		return Verdict{}, false
	}

	var decoded struct {
		IsCorrect bool   `json:"is_correct"`
		Feedback  string `json:"feedback"`
		Reasoning string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return Verdict{}, false
	}
	return Verdict{
		Correct:   decoded.IsCorrect,
		Feedback:  decoded.Feedback,
		Reasoning: decoded.Reasoning,
	}, true
}

func cardList(cards []deck.Card) string {
	if len(cards) == 0 {
		return "None"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
