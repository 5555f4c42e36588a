package evaluation

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/llm"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/prompts"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/sandbox"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/utils"
)

// SandboxRunner is the slice of the sandbox client the DSA rubric needs.
// nil means sandboxed grading is disabled.
type SandboxRunner interface {
	RunTests(ctx context.Context, code, language string, cases []models.TestCase) (*sandbox.Result, error)
}

// DsaEvaluator grades coding-round answers:
// 0.4 correctness + 0.3 code quality + 0.2 efficiency + 0.1 speed.
//
// Correctness prefers sandbox execution when test cases exist (60% of the
// dimension), blends an AI judgment 50/50 with the heuristic when no sandbox
// result is available, and stands on the heuristic alone when both remotes
// are down.
type DsaEvaluator struct {
	runner   SandboxRunner
	provider llm.Provider
	prompts  prompts.PromptProvider
	timeout  time.Duration
	fw       *feedbackWriter
	logger   *zap.Logger
}

func NewDsaEvaluator(runner SandboxRunner, provider llm.Provider, promptManager prompts.PromptProvider, timeout time.Duration, fw *feedbackWriter, logger *zap.Logger) *DsaEvaluator {
	return &DsaEvaluator{
		runner:   runner,
		provider: provider,
		prompts:  promptManager,
		timeout:  timeout,
		fw:       fw,
		logger:   logger,
	}
}

func (e *DsaEvaluator) Type() models.RoundType { return models.RoundDSA }

var dsaPhrases = highlightPhrases{
	"correctness":  {"Correct and well-reasoned solution approach", "Work on solution correctness: practice verifying your approach against edge cases"},
	"code_quality": {"Clean, readable code", "Improve code readability: naming, structure and comments"},
	"efficiency":   {"Good complexity analysis", "Analyze and state the time/space complexity of your solutions"},
	"speed":        {"Solved well within the expected time", "Work on solving speed: practice similar problems under a timer"},
}

func (e *DsaEvaluator) Evaluate(ctx context.Context, in Input) models.Evaluation {
	var degradedReasons []string

	correctness, reasons := e.correctness(ctx, in)
	degradedReasons = append(degradedReasons, reasons...)

	dims := []dimension{
		{name: "correctness", weight: 0.4, score: correctness},
		{name: "code_quality", weight: 0.3, score: codeQuality(in.Code)},
		{name: "efficiency", weight: 0.2, score: efficiency(in, in.Question)},
		{name: "speed", weight: 0.1, score: speedScore(in.TimeTakenSeconds, in.Question.TimeLimitSeconds)},
	}

	score, breakdown := combine(dims)
	strengths, improvements := highlights(dims, dsaPhrases)

	feedback, fbReason := e.fw.write(ctx, "dsa", in, dims)
	if fbReason != "" {
		degradedReasons = append(degradedReasons, fbReason)
	}

	return models.Evaluation{
		Score:           score,
		Feedback:        feedback,
		Strengths:       strengths,
		Improvements:    improvements,
		Breakdown:       breakdown,
		Degraded:        len(degradedReasons) > 0,
		DegradedReasons: degradedReasons,
	}
}

// correctness resolves the dimension through the sandbox -> AI -> heuristic
// chain, reporting which remote tiers degraded.
func (e *DsaEvaluator) correctness(ctx context.Context, in Input) (float64, []string) {
	heuristic := correctnessHeuristic(in)
	var reasons []string

	if e.runner != nil && strings.TrimSpace(in.Code) != "" && len(in.Question.TestCases) > 0 {
		runCtx, cancel := context.WithTimeout(ctx, e.timeout)
		result, err := e.runner.RunTests(runCtx, in.Code, in.Language, in.Question.TestCases)
		cancel()
		if err == nil {
			passRate := 100 * float64(result.Passed) / float64(result.Total)
			if result.Passed == result.Total {
				passRate += 5
			}
			sandboxScore := utils.Clamp(passRate)
			return utils.Clamp(0.6*sandboxScore + 0.4*heuristic), nil
		}
		e.logger.Warn("sandbox execution failed, falling back", zap.Error(err))
		reasons = append(reasons, "sandbox_unavailable")
	}

	if e.provider != nil && e.prompts != nil {
		aiScore, err := e.aiCorrectness(ctx, in)
		if err == nil {
			return utils.Clamp((heuristic + aiScore) / 2), reasons
		}
		e.logger.Warn("AI correctness judgment failed, using heuristic", zap.Error(err))
		reasons = append(reasons, "ai_correctness_unavailable")
	}

	return heuristic, reasons
}

func (e *DsaEvaluator) aiCorrectness(ctx context.Context, in Input) (float64, error) {
	prompt, err := e.prompts.BuildPrompt("correctness", "default", map[string]string{
		"Question": in.Question.Text,
		"Answer":   in.Text,
		"Code":     in.Code,
	})
	if err != nil {
		return 0, err
	}

	aiCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.provider.GenerateText(aiCtx, prompt, "")
	if err != nil {
		return 0, err
	}

	v, ok := utils.FirstNumber(raw)
	if !ok {
		return 0, &llm.ProviderError{
			Provider: e.provider.GetProviderName(),
			Code:     llm.ErrCodeInvalidInput,
			Message:  "correctness judgment is not numeric",
		}
	}
	return utils.Clamp(v), nil
}

// vocabulary of canonical solution approaches
var approachKeywords = []string{
	"hash map", "hashmap", "hash table", "dictionary", "hash set",
	"two pointer", "two-pointer", "sliding window",
	"dynamic programming", "memoization", "tabulation",
	"bfs", "breadth-first", "dfs", "depth-first",
	"binary search", "topological", "greedy", "recursion", "backtracking",
	"stack", "queue", "deque", "heap", "priority queue",
	"divide and conquer", "prefix sum", "union find", "monotonic", "sort",
}

var functionDefRe = regexp.MustCompile(`(?m)(^|\s)(def |func |function |public |=>)`)

// correctnessHeuristic scores approach vocabulary plus structural code
// signals. An empty answer with no recognizable approach lands at 30.
func correctnessHeuristic(in Input) float64 {
	lowered := utils.Normalize(in.Text + "\n" + in.Code)
	score := 30.0

	matched := utils.CountDistinct(lowered, approachKeywords)
	if matched > 3 {
		matched = 3
	}
	score += float64(matched) * 10

	if in.Code != "" {
		if functionDefRe.MatchString(in.Code) {
			score += 10
		}
		if utils.ContainsAny(lowered, []string{"for ", "for(", "while ", "while("}) {
			score += 10
		}
		if utils.ContainsAny(lowered, []string{"if ", "if("}) {
			score += 5
		}
	}

	return utils.Clamp(score)
}

var commentRe = regexp.MustCompile(`(?m)(#|//|/\*)`)
var identifierRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

func codeQuality(code string) float64 {
	if strings.TrimSpace(code) == "" {
		return 30
	}

	score := 50.0
	lines := strings.Split(strings.TrimSpace(code), "\n")

	if len(lines) >= 3 && len(lines) <= 80 {
		score += 10
	} else {
		score -= 10
	}

	idents := make(map[string]bool)
	for _, id := range identifierRe.FindAllString(code, -1) {
		idents[id] = true
	}
	if len(idents) >= 8 {
		score += 10
	}

	if commentRe.MatchString(code) {
		score += 10
	}
	if consistentIndentation(lines) {
		score += 10
	}

	longLine := false
	for _, line := range lines {
		if len(line) > 120 {
			longLine = true
			break
		}
	}
	if longLine {
		score -= 5
	} else {
		score += 5
	}

	if strings.Contains(code, "return") {
		score += 10
	}

	return utils.Clamp(score)
}

// consistentIndentation reports whether indented lines agree on tabs vs spaces.
func consistentIndentation(lines []string) bool {
	sawTab, sawSpace := false, false
	for _, line := range lines {
		if strings.HasPrefix(line, "\t") {
			sawTab = true
		} else if strings.HasPrefix(line, " ") {
			sawSpace = true
		}
	}
	return !(sawTab && sawSpace)
}

var complexityRe = regexp.MustCompile(`(?i)O\([^)]+\)`)

func efficiency(in Input, q *models.Question) float64 {
	score := 50.0
	combined := in.Text + "\n" + in.Code

	mentions := complexityRe.FindAllString(combined, -1)
	if len(mentions) > 0 {
		score += 20
		if q.ExpectedComplexity != "" {
			want := normalizeComplexity(q.ExpectedComplexity)
			for _, m := range mentions {
				if normalizeComplexity(m) == want {
					score += 15
					break
				}
			}
		}
	}

	if loopNestingDepth(in.Code) >= 3 {
		score -= 20
	}

	return utils.Clamp(score)
}

func normalizeComplexity(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// loopNestingDepth approximates nesting by indentation of loop headers.
func loopNestingDepth(code string) int {
	maxDepth := 0
	var stack []int
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if strings.HasPrefix(trimmed, "for") || strings.HasPrefix(trimmed, "while") {
			for len(stack) > 0 && stack[len(stack)-1] >= indent {
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, indent)
			if len(stack) > maxDepth {
				maxDepth = len(stack)
			}
		}
	}
	return maxDepth
}

// speedScore maps the time-taken ratio through a fixed step function.
func speedScore(timeTakenSeconds, timeLimitSeconds int) float64 {
	if timeLimitSeconds <= 0 {
		timeLimitSeconds = 600
	}
	ratio := float64(timeTakenSeconds) / float64(timeLimitSeconds)
	switch {
	case ratio <= 0.5:
		return 100
	case ratio <= 0.75:
		return 90
	case ratio <= 1.0:
		return 80
	case ratio <= 1.5:
		return 60
	case ratio <= 2.0:
		return 45
	default:
		return 30
	}
}
