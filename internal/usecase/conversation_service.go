package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"
	idgen "github.com/ovaskainen/snooker-score-bot/internal/platform/id"
	"github.com/ovaskainen/snooker-score-bot/internal/platform/logging"
)

// ReportExtractor parses free text into a structured score report.
type ReportExtractor interface {
	Extract(ctx context.Context, rawText string, fixture snooker.Fixture) (snooker.ScoreReport, error)
}

// ReportCommitter persists an accepted report.
type ReportCommitter interface {
	Commit(ctx context.Context, fixtureID string, report snooker.ScoreReport, source string) error
}

// ConversationService drives one inbound message end to end: resolve the
// fixture, extract the report, commit it, and phrase a reply. Every outcome,
// success or failure, yields a sender-facing reply; the returned error is for
// the caller's log only and never changes what the sender sees.
type ConversationService struct {
	fixtures  snooker.FixtureRepository
	extractor ReportExtractor
	results   ReportCommitter
	replies   ReplyCatalog
	source    string
	ids       idgen.Generator
	logger    *logging.Logger
}

func NewConversationService(
	fixtures snooker.FixtureRepository,
	extractor ReportExtractor,
	results ReportCommitter,
	replies ReplyCatalog,
	source string,
	logger *logging.Logger,
) *ConversationService {
	if logger == nil {
		logger = logging.Default()
	}
	if replies == nil {
		replies = Replies("eng")
	}
	if source == "" {
		source = "sms"
	}

	return &ConversationService{
		fixtures:  fixtures,
		extractor: extractor,
		results:   results,
		replies:   replies,
		source:    source,
		ids:       idgen.NewRandomGenerator(),
		logger:    logger,
	}
}

// HandleInbound processes one message and returns the reply to send back.
// A body containing the word TEST runs the full pipeline but skips the commit.
func (s *ConversationService) HandleInbound(ctx context.Context, sender, body string) (string, error) {
	ctx, span := startSpan(ctx, "usecase.ConversationService.HandleInbound")
	defer span.End()

	body = strings.TrimSpace(body)
	if sender == "" || body == "" {
		return s.replies.format(replyNotUnderstood), fmt.Errorf("%w: empty sender or body", ErrInvalidInput)
	}

	// Message id correlates the log lines of one inbound message across the
	// pipeline; the sender never sees it.
	messageID, err := s.ids.NewID()
	if err != nil {
		messageID = "unknown"
	}
	logger := s.logger.With("message_id", messageID)

	logger.InfoContext(ctx, "inbound message", "sender", sender, "length", len(body))
	isTest := strings.Contains(body, "TEST")

	fixture, err := s.resolveFixture(ctx, body)
	if err != nil {
		return s.replyFor(ctx, logger, sender, err), err
	}

	report, err := s.extractor.Extract(ctx, body, fixture)
	if err != nil {
		return s.replyFor(ctx, logger, sender, err), err
	}

	summary := s.summarize(fixture, report)
	if isTest {
		logger.InfoContext(ctx, "test message, skipping commit",
			"sender", sender, "fixture_id", fixture.ID, "scoreline", report.Scoreline())
		return s.replies.format(replyTested, summary), nil
	}

	if err := s.results.Commit(ctx, fixture.ID, report, s.sourceLabel(sender, body)); err != nil {
		return s.replyFor(ctx, logger, sender, err), err
	}

	return s.replies.format(replyRecorded, summary), nil
}

// resolveFixture finds the fixture a message refers to. An explicit id token
// anywhere in the body wins; otherwise both players' surnames must match
// exactly one open fixture of the current round.
func (s *ConversationService) resolveFixture(ctx context.Context, body string) (snooker.Fixture, error) {
	lowered := strings.ToLower(body)

	for _, token := range strings.Fields(lowered) {
		token = strings.Trim(token, ".,:;!?()\"'")
		if len(token) < 4 || len(token) > 12 {
			continue
		}
		fixture, ok, err := s.fixtures.GetByID(ctx, token)
		if err != nil {
			return snooker.Fixture{}, err
		}
		if !ok {
			continue
		}
		if fixture.State != snooker.StateUnplayed {
			return snooker.Fixture{}, fmt.Errorf("%w: fixture=%s", ErrAlreadyComplete, fixture.ID)
		}
		return fixture, nil
	}

	round, err := s.fixtures.CurrentRound(ctx)
	if err != nil {
		return snooker.Fixture{}, err
	}
	open, err := s.fixtures.ListOpen(ctx, round)
	if err != nil {
		return snooker.Fixture{}, err
	}

	var matches []snooker.Fixture
	for _, fixture := range open {
		s1 := strings.ToLower(snooker.Surname(fixture.Player1))
		s2 := strings.ToLower(snooker.Surname(fixture.Player2))
		if s1 != "" && s2 != "" && strings.Contains(lowered, s1) && strings.Contains(lowered, s2) {
			matches = append(matches, fixture)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return snooker.Fixture{}, fmt.Errorf("%w: no open fixture in round %d matches the message", ErrFixtureNotFound, round)
	default:
		ids := make([]string, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		return snooker.Fixture{}, fmt.Errorf("%w: %s", ErrAmbiguousFixture, strings.Join(ids, ", "))
	}
}

// replyFor maps a pipeline error to the most specific reply available.
func (s *ConversationService) replyFor(ctx context.Context, logger *logging.Logger, sender string, err error) string {
	logger.WarnContext(ctx, "message not recorded", "sender", sender, "error", err)

	switch {
	case errors.Is(err, ErrAmbiguousFixture):
		return s.replies.format(replyAmbiguous, strings.TrimPrefix(err.Error(), ErrAmbiguousFixture.Error()+": "))
	case errors.Is(err, ErrFixtureNotFound):
		return s.replies.format(replyFixtureUnknown)
	case errors.Is(err, ErrAlreadyComplete):
		return s.replies.format(replyAlreadyDone)
	case errors.Is(err, ErrInconsistentWithFormat):
		return s.replies.format(replyRuleViolation, ruleDetail(err))
	case errors.Is(err, ErrModelOutputInvalid), errors.Is(err, ErrInvalidInput):
		return s.replies.format(replyNotUnderstood)
	case errors.Is(err, ErrExtractionTimeout),
		errors.Is(err, ErrDependencyUnavailable),
		errors.Is(err, ErrStoreUnavailable):
		return s.replies.format(replyTryLater)
	default:
		return s.replies.format(replyTryLater)
	}
}

// ruleDetail strips the sentinel prefix so the reply names the rule only.
func ruleDetail(err error) string {
	detail := err.Error()
	if idx := strings.Index(detail, ": "); idx >= 0 {
		detail = detail[idx+2:]
	}
	return detail
}

// sourceLabel tags persisted rows with who reported the result and an excerpt
// of what they wrote. The cut lands on a rune boundary so the excerpt stays
// valid UTF-8 even mid-name.
func (s *ConversationService) sourceLabel(sender, body string) string {
	excerpt := body
	if len(excerpt) > 80 {
		cut := 80
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut]
	}
	return fmt.Sprintf("%s %s: %s", s.source, sender, excerpt)
}

func (s *ConversationService) summarize(fixture snooker.Fixture, report snooker.ScoreReport) string {
	line := fmt.Sprintf("%s %s %s", fixture.Player1, report.Scoreline(), fixture.Player2)
	if best, ok := report.HighestBreak(); ok {
		if name, found := fixture.PlayerName(best.Player); found {
			line += fmt.Sprintf("\nHighest break: %d (%s)", best.Points, name)
		}
	}
	return line
}
