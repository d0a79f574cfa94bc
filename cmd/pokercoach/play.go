package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pokercoach/internal/bot"
	"github.com/lox/pokercoach/internal/config"
	"github.com/lox/pokercoach/internal/education"
	"github.com/lox/pokercoach/internal/evaluator"
	"github.com/lox/pokercoach/internal/game"
	"github.com/lox/pokercoach/internal/randutil"
	"github.com/lox/pokercoach/internal/store"
	"github.com/lox/pokercoach/internal/ui"
)

var botNames = []string{"Alice", "Bob", "Carol", "Dave", "Eve"}

// PlayCommand runs a coached poker session against the bots
type PlayCommand struct {
	Name       string `short:"p" long:"player" help:"Player name (overrides config)"`
	Bots       int    `long:"bots" help:"Number of bot opponents (overrides config)"`
	Difficulty string `short:"d" long:"difficulty" help:"Bot difficulty: easy, medium, hard (overrides config)"`
	Seed       int64  `long:"seed" help:"Deck shuffle seed, for reproducible sessions"`
	NoQuiz     bool   `long:"no-quiz" help:"Skip the educational questions between streets"`
	Save       string `long:"save" help:"Path to the balance file (overrides the default location)"`
	LogLevel   string `short:"l" long:"log-level" help:"Log level (overrides config)"`
}

func (cmd *PlayCommand) Run(cfg *config.Config) error {
	if cmd.Name != "" {
		cfg.Player.Name = cmd.Name
	}
	if cmd.Bots != 0 {
		cfg.Game.Bots = cmd.Bots
	}
	if cmd.Difficulty != "" {
		cfg.Game.Difficulty = cmd.Difficulty
	}
	if cmd.LogLevel != "" {
		cfg.Game.LogLevel = cmd.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	difficulty, err := bot.ParseDifficulty(cfg.Game.Difficulty)
	if err != nil {
		return err
	}

	logger := log.New(os.Stderr)
	if level, err := log.ParseLevel(cfg.Game.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	rng := randutil.NewFromTime()
	if cmd.Seed != 0 {
		rng = randutil.New(cmd.Seed)
	}

	var st *store.Store
	if cmd.Save != "" {
		st = store.New(cmd.Save)
	} else if st, err = store.NewDefault(); err != nil {
		return err
	}
	balance, err := st.Load(cfg.Player.Name)
	if err != nil {
		logger.Warn("could not read saved balance, starting fresh", "error", err)
		balance = store.Balance{Name: cfg.Player.Name, Chips: cfg.Game.StartingChips}
	}
	if balance.Chips <= 0 {
		fmt.Println(ui.HintStyle.Render("You were broke! Here's a fresh stack."))
		balance.Chips = cfg.Game.StartingChips
	}

	grader := selectGrader(cfg, logger)

	human := game.NewPlayer(cfg.Player.Name, balance.Chips)
	profile := bot.ProfileFor(difficulty)
	var bots []*game.Player
	for i := 0; i < cfg.Game.Bots; i++ {
		bots = append(bots, game.NewBot(botNames[i%len(botNames)], cfg.Game.StartingChips, profile))
	}

	s := &session{
		table:         game.NewTable(human, bots, cfg.Game.SmallBlind, rng, logger),
		grader:        grader,
		store:         st,
		logger:        logger,
		quiz:          !cmd.NoQuiz,
		startingChips: cfg.Game.StartingChips,
	}

	fmt.Println(ui.Banner())
	fmt.Printf("Welcome back, %s! You have $%d. Bots: %d (%s)\n\n",
		human.Name, human.Chips, cfg.Game.Bots, difficulty)

	return s.run()
}

func selectGrader(cfg *config.Config, logger *log.Logger) education.Grader {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		fmt.Println(ui.InfoStyle.Render("No API key set; answers are graded numerically."))
		return education.NewLocalGrader()
	}
	fmt.Println(ui.SuccessStyle.Render("Tutor enabled: answers are graded by a reasoning model."))
	return education.NewRemoteGrader(education.RemoteGraderOptions{
		APIKey:  apiKey,
		APIURL:  cfg.Tutor.APIURL,
		Model:   cfg.Tutor.Model,
		Timeout: time.Duration(cfg.Tutor.TimeoutSeconds) * time.Second,
		Logger:  logger,
	})
}

// session drives the menu loop and per-hand flow.
type session struct {
	table         *game.Table
	grader        education.Grader
	store         *store.Store
	logger        *log.Logger
	quiz          bool
	startingChips int

	quizzed  map[game.Street]bool
	lastQuiz *education.Question
}

func (s *session) run() error {
	defer s.saveBalance()

	for {
		if s.table.GameOver() {
			if s.table.Human.Chips > 0 {
				fmt.Println(ui.SuccessStyle.Render("You cleaned out the table. Well played!"))
				return nil
			}
			choice, err := ui.Select("You're out of chips",
				[]string{fmt.Sprintf("Get free chips ($%d)", s.startingChips), "Quit"})
			if errors.Is(err, ui.ErrAborted) || choice == 1 {
				return nil
			}
			if err != nil {
				return err
			}
			s.table.Human.Chips = s.startingChips
			continue
		}

		choice, err := ui.Select(fmt.Sprintf("Main menu — you have $%d", s.table.Human.Chips),
			[]string{"Play a hand", "Quit"})
		if errors.Is(err, ui.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == 1 {
			return nil
		}

		if err := s.playHand(); errors.Is(err, ui.ErrAborted) {
			return nil
		} else if err != nil {
			return err
		}
		s.saveBalance()
	}
}

func (s *session) playHand() error {
	if !s.table.StartHand() {
		return fmt.Errorf("not enough players to start a hand")
	}
	s.quizzed = map[game.Street]bool{}
	s.lastQuiz = nil

	fmt.Println()
	fmt.Print(ui.TableState(s.table))

	contested, err := s.table.BettingRound(s.humanAct, s.observe)
	if err != nil {
		return err
	}

	deals := []func(){s.table.DealFlop, s.table.DealTurn, s.table.DealRiver}
	for _, deal := range deals {
		if !contested {
			break
		}
		deal()
		fmt.Println()
		fmt.Print(ui.TableState(s.table))
		contested, err = s.table.BettingRound(s.humanAct, s.observe)
		if err != nil {
			return err
		}
	}

	results := s.table.Showdown()
	fmt.Println()
	fmt.Print(ui.Results(results))
	s.table.MoveButton()

	if s.lastQuiz != nil {
		if err := s.offerChat(*s.lastQuiz); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) observe(p *game.Player, a bot.Action, paid int) {
	if p.IsBot() {
		fmt.Println(ui.BotAction(p, a, paid))
	}
}

// humanAct collects the human's action. The first decision point on each
// post-flop street triggers the quiz, when the board context is freshest.
func (s *session) humanAct(p *game.Player) (bot.Action, error) {
	if s.quiz && s.table.Street != game.PreFlop && !s.quizzed[s.table.Street] {
		s.quizzed[s.table.Street] = true
		if err := s.runQuiz(p); err != nil {
			return bot.Action{}, err
		}
	}

	call := s.table.CallAmount(p)
	maxExtra := p.Chips - call

	var options []string
	var actions []bot.ActionType
	if call == 0 {
		options = []string{"Check", "Bet", "Fold"}
		actions = []bot.ActionType{bot.Check, bot.Bet, bot.Fold}
	} else {
		options = []string{fmt.Sprintf("Call $%d", call), "Raise", "Fold"}
		actions = []bot.ActionType{bot.Call, bot.Raise, bot.Fold}
	}
	if maxExtra < s.table.MinRaise {
		// Not enough behind to bet or raise the minimum.
		options = options[:1]
		options = append(options, "Fold")
		actions = append(actions[:1], bot.Fold)
	}

	title := fmt.Sprintf("Your move — hand %s, pot $%d", ui.FormatCards(p.Hole), s.table.Pot)
	choice, err := ui.Select(title, options)
	if err != nil {
		return bot.Action{}, err
	}

	kind := actions[choice]
	switch kind {
	case bot.Bet, bot.Raise:
		verb := "Bet"
		if kind == bot.Raise {
			verb = "Raise by"
		}
		amount, err := ui.InputInt(
			fmt.Sprintf("%s how much? (min $%d)", verb, s.table.MinRaise),
			s.table.MinRaise, maxExtra)
		if err != nil {
			return bot.Action{}, err
		}
		return bot.Action{Type: kind, Amount: amount}, nil
	default:
		return bot.Action{Type: kind, Amount: call}, nil
	}
}

// runQuiz asks the street's questions: pot odds when facing a bet, then outs
// and win odds while cards are still to come, then a recommendation.
func (s *session) runQuiz(p *game.Player) error {
	ctx := context.Background()
	stage := s.table.Street.String()
	call := s.table.CallAmount(p)

	var potOdds evaluator.Ratio
	askedPotOdds := false
	if call > 0 {
		q := education.PotOddsQuestion(stage, s.table.Pot, call)
		if err := s.ask(ctx, q); err != nil {
			return err
		}
		potOdds = q.CorrectRatio
		askedPotOdds = true
	}

	// On the river no card is left to come, so the outs question looks back
	// at the draw as it stood on the turn and win odds are not asked.
	retrospective := s.table.Street == game.River
	board := s.table.Board
	if retrospective {
		board = board[:4]
	}

	outs, err := evaluator.Outs(p.Hole, board, nil)
	if err != nil {
		s.logger.Warn("outs calculation failed", "error", err)
		return nil
	}

	oq := education.OutsQuestion(stage, p.Hole, board, &outs)
	if err := s.ask(ctx, oq); err != nil {
		return err
	}
	fmt.Println(ui.InfoStyle.Render(outs.Display()))

	if retrospective {
		fmt.Println()
		return nil
	}

	wq := education.WinOddsQuestion(stage, p.Hole, s.table.Board, outs.Total(), outs.UnseenCount)
	if err := s.ask(ctx, wq); err != nil {
		return err
	}

	if askedPotOdds {
		fmt.Println(ui.HintStyle.Render(
			education.Recommendation(potOdds, wq.CorrectRatio, outs.Current.Category)))
	}
	fmt.Println()
	return nil
}

// ask presents one question, grades the answer, and shows the feedback.
func (s *session) ask(ctx context.Context, q education.Question) error {
	fmt.Println()
	fmt.Println(ui.QuestionPrompt(q))

	answer, err := ui.Input("Your answer", q.Hint)
	if err != nil {
		return err
	}

	verdict, err := s.grader.Grade(ctx, q, answer)
	if err != nil {
		s.logger.Warn("grading failed", "error", err)
		return nil
	}
	fmt.Println(ui.Verdict(verdict))
	s.lastQuiz = &q
	return nil
}

// offerChat lets the player question the tutor about the completed hand.
// Only available when the active grader can hold a conversation.
func (s *session) offerChat(q education.Question) error {
	tutor, ok := s.grader.(education.Tutor)
	if !ok {
		return nil
	}

	want, err := ui.Confirm("Ask the tutor about this hand?")
	if err != nil || !want {
		return err
	}

	var transcript []education.ChatTurn
	for {
		msg, err := ui.Input("You (empty to finish)", "e.g. why wasn't the ace an out?")
		if err != nil {
			return err
		}
		if msg == "" {
			return nil
		}
		transcript = append(transcript, education.ChatTurn{Role: "user", Content: msg})

		reply, err := tutor.Chat(context.Background(), q, transcript)
		if err != nil {
			fmt.Println(ui.ErrorStyle.Render("The tutor is unavailable right now."))
			s.logger.Warn("tutor chat failed", "error", err)
			return nil
		}
		transcript = append(transcript, education.ChatTurn{Role: "assistant", Content: reply})
		fmt.Println(ui.TutorReply(reply))
	}
}

func (s *session) saveBalance() {
	b := store.Balance{Name: s.table.Human.Name, Chips: s.table.Human.Chips}
	if err := s.store.Save(b); err != nil {
		s.logger.Warn("could not save balance", "error", err)
	}
}
