package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/rbeaumont/questtrail/pkg/journey"
	"github.com/rbeaumont/questtrail/pkg/memory"
	"github.com/rbeaumont/questtrail/pkg/minigame"
	"github.com/rbeaumont/questtrail/pkg/navigation"
	"github.com/rbeaumont/questtrail/pkg/progress"
	"github.com/rbeaumont/questtrail/pkg/quest"
)

const PlaceHolderText = "Type a command, or a story note to complete the level..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config        *ConsoleConfig
	client        *http.Client
	quest         *quest.Quest
	questFile     string
	record        *progress.Record
	navSession    *navigation.Snapshot
	transcript    []string
	storyViewport viewport.Model
	metaViewport  viewport.Model
	textarea      textarea.Model
	ready         bool
	width         int
	height        int
	err           error
	loading       bool

	// Quest selection state
	showQuestModal bool
	quests         []string
	questMap       map[string]string
	selectedQuest  int
	loadingQuests  bool

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type questsLoadedMsg struct {
	quests   []string
	questMap map[string]string
	err      error
}

type questLoadedMsg struct {
	quest  *quest.Quest
	record *progress.Record
	err    error
}

type attemptMsg struct {
	outcome *journey.Outcome
	err     error
}

type progressMsg struct {
	record *progress.Record
	err    error
}

type memoriesMsg struct {
	entries []memory.Entry
	copied  bool
	err     error
}

type navigationMsg struct {
	snap *navigation.Snapshot
	err  error
}

type resetMsg struct {
	err error
}

type progressTickMsg struct{}

var (
	storyPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	levelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	storyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	storyVp := viewport.New(50, 20)
	storyVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:         cfg,
		client:         client,
		textarea:       ta,
		storyViewport:  storyVp,
		metaViewport:   metaVp,
		ready:          false,
		showQuestModal: true,
		loadingQuests:  true,
		selectedQuest:  0,
	}
}

func (m *ConsoleUI) currentLevel() *quest.Level {
	if m.quest == nil || m.record == nil {
		return nil
	}
	return m.quest.Level(m.record.CurrentLevel)
}

func (m *ConsoleUI) adventureComplete() bool {
	return m.quest != nil && m.record != nil && m.record.IsCompleted(m.quest.Final())
}

func (m *ConsoleUI) appendLine(line string) {
	m.transcript = append(m.transcript, line)
}

// describeLevel renders the current level card into the transcript.
func (m *ConsoleUI) describeLevel() {
	level := m.currentLevel()
	if level == nil {
		if m.adventureComplete() {
			m.appendLine(titleStyle.Render("🎉 Adventure complete!"))
			m.appendLine("Every level is done. Try /memories to relive it, or /reset to start over.")
		}
		return
	}

	m.appendLine(levelStyle.Render(fmt.Sprintf("Level %d: %s", level.ID, level.Title)))
	if level.StoryText != "" {
		m.appendLine(storyStyle.Render(level.StoryText))
	}
	if level.UnlockTime != "" {
		if cd, ok := quest.TimeUntil(level.UnlockTime, time.Now()); ok && !cd.Passed {
			m.appendLine(loadingStyle.Render(fmt.Sprintf("⏰ Unlocks at %s (in %s)", level.UnlockTime, cd.Formatted())))
		}
	}
	if gt := level.GameType(); gt != minigame.TypeNone {
		m.appendLine(fmt.Sprintf("Mini-game: %s", gt))
	}
	if level.Destination != nil {
		m.appendLine(fmt.Sprintf("Destination: %.4f, %.4f  (try /go)", level.Destination.Lat, level.Destination.Lng))
	}
}

func (m *ConsoleUI) writeStoryContent() {
	storyWidth := m.storyViewport.Width - 6 // Account for left(3) + right(3) padding
	if storyWidth < 10 {
		storyWidth = 10
	}

	var content strings.Builder
	if m.quest != nil {
		content.WriteString(titleStyle.Render(strings.ToUpper(m.quest.DisplayName())) + "\n\n")
	} else {
		content.WriteString(titleStyle.Render("QUESTTRAIL") + "\n\n")
	}
	content.WriteString("Complete each level to unlock the next. Type /help for commands.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", storyWidth-6)) + "\n\n")

	for _, line := range m.transcript {
		content.WriteString(wordwrap.String(line, storyWidth) + "\n")
	}

	if m.loading {
		content.WriteString("\n" + m.renderProgressBar())
	}

	m.storyViewport.SetContent(content.String())
	m.storyViewport.GotoBottom()
}

func (m *ConsoleUI) writeMetadata() {
	var content strings.Builder
	content.WriteString(titleStyle.Render("PROGRESS") + "\n\n")

	if m.quest != nil {
		content.WriteString("Quest:\n")
		content.WriteString(m.quest.DisplayName() + "\n\n")
		if m.quest.PartnerName != "" {
			content.WriteString("Partner:\n")
			content.WriteString(m.quest.PartnerName + "\n\n")
		}
	}

	if m.record != nil {
		content.WriteString(fmt.Sprintf("Current level:\n%d of %d\n\n", m.record.CurrentLevel, m.quest.Final()))
		content.WriteString(fmt.Sprintf("Completed:\n%d levels\n\n", len(m.record.CompletedLevels)))
		content.WriteString(fmt.Sprintf("Story points:\n%d collected\n\n", len(m.record.StoryPoints)))
	}

	if m.navSession != nil {
		content.WriteString("Navigation:\n")
		if m.navSession.Arrived {
			content.WriteString("Arrived ✓\n\n")
		} else if m.navSession.Distance != "" {
			content.WriteString(fmt.Sprintf("%s %s\n\n", m.navSession.Arrow, m.navSession.Distance))
		} else {
			content.WriteString("Tracking...\n\n")
		}
	}

	content.WriteString("Commands:\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /level: Level card\n")
	content.WriteString("• /memories: Memory book\n")
	content.WriteString("• Ctrl+C: Quit\n")

	m.metaViewport.SetContent(content.String())
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showQuestModal {
		return m.loadQuests()
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle quest modal first
	if m.showQuestModal {
		return m.updateQuestModal(msg)
	}

	// Handle quit modal second
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.storyViewport, vpCmd = m.storyViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		m.writeStoryContent()
		m.writeMetadata()
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			m.textarea.Reset()
			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			// Plain text is a story note submitted with a passing attempt
			return m.submitCurrentLevel(input)
		}

	case attemptMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
		} else {
			m.record = msg.outcome.Record
			if msg.outcome.Passed {
				if msg.outcome.Congratulations != "" {
					m.appendLine(titleStyle.Render(msg.outcome.Congratulations))
				}
				m.navSession = nil
				m.appendLine("")
				m.describeLevel()
			} else {
				m.appendLine(errorStyle.Render("Not quite. The level stays open, try again!"))
			}
		}
		m.writeStoryContent()
		m.writeMetadata()
		return m, nil

	case progressMsg:
		if msg.err == nil && msg.record != nil {
			m.record = msg.record
			m.writeMetadata()
		}

	case memoriesMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
		} else if msg.copied {
			m.appendLine("📋 Memory book copied to clipboard.")
		} else if len(msg.entries) == 0 {
			m.appendLine("No memories yet. Complete a level first!")
		} else {
			m.appendLine(titleStyle.Render("MEMORY BOOK"))
			for _, e := range msg.entries {
				m.appendLine(levelStyle.Render(fmt.Sprintf("Level %d: %s", e.LevelID, e.Title)))
				if e.StoryPoint != "" {
					m.appendLine("  " + storyStyle.Render(e.StoryPoint))
				}
				for _, p := range e.Photos {
					m.appendLine("  📷 " + p)
				}
			}
		}
		m.writeStoryContent()
		return m, nil

	case navigationMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
		} else {
			m.navSession = msg.snap
			if msg.snap.Arrived {
				m.appendLine(titleStyle.Render("📍 You have arrived!"))
				if msg.snap.Destination.ArrivalMessage != "" {
					m.appendLine(storyStyle.Render(msg.snap.Destination.ArrivalMessage))
				}
			} else if msg.snap.Distance != "" {
				m.appendLine(fmt.Sprintf("%s %s %s  %s", msg.snap.Arrow, msg.snap.Distance, msg.snap.Cardinal, msg.snap.Encouragement))
			} else {
				m.appendLine("Navigation session started. Send fixes with /pos <lat> <lng>, or /checkin on arrival.")
			}
		}
		m.writeStoryContent()
		m.writeMetadata()
		return m, nil

	case resetMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
			m.writeStoryContent()
			return m, nil
		}
		m.navSession = nil
		m.transcript = nil
		m.appendLine("Progress reset. The adventure begins again!")
		m.appendLine("")
		return m, m.reloadQuest()

	case questLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
		} else {
			m.quest = msg.quest
			m.record = msg.record
			m.describeLevel()
		}
		m.writeStoryContent()
		m.writeMetadata()
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeStoryContent()
			return m, progressTick()
		}
	}

	// Update components for non-mouse events
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.storyViewport, vpCmd = m.storyViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resizePanels() {
	storyWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - storyWidth - 6

	m.storyViewport.Width = storyWidth - 2
	m.storyViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(storyWidth - 4)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "/help":
		helpText := `Commands:
• /level - Show the current level
• /done [story note] - Submit a passing attempt
• /go - Start navigating to the level destination
• /pos <lat> <lng> - Send a position fix
• /checkin - Manual arrival check-in
• /memories - Show the memory book
• /copy - Copy the memory book to the clipboard
• /reset - Discard all progress
• Ctrl+C - Quit

A plain message completes the level with that text as its story note.`
		m.appendLine(titleStyle.Render("Help:"))
		m.appendLine(helpText)
		m.writeStoryContent()
		return m, nil

	case "/level":
		m.describeLevel()
		m.writeStoryContent()
		return m, nil

	case "/done":
		story := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))
		return m.submitCurrentLevel(story)

	case "/fail":
		level := m.currentLevel()
		if level == nil {
			m.appendLine("Nothing left to attempt.")
			m.writeStoryContent()
			return m, nil
		}
		m.loading = true
		m.progressTick = 0
		m.appendLine(userStyle.Render("You: ") + "(giving up on this attempt)")
		m.writeStoryContent()
		return m, tea.Batch(m.sendAttempt(level.ID, minigame.Result{}), progressTick())

	case "/go":
		level := m.currentLevel()
		if level == nil || level.Destination == nil {
			m.appendLine("The current level has no destination.")
			m.writeStoryContent()
			return m, nil
		}
		m.loading = true
		m.progressTick = 0
		m.writeStoryContent()
		return m, tea.Batch(m.startNavigation(level.ID), progressTick())

	case "/pos":
		if m.navSession == nil {
			m.appendLine("No navigation session. Start one with /go.")
			m.writeStoryContent()
			return m, nil
		}
		var lat, lng float64
		if len(fields) != 3 {
			m.appendLine("Usage: /pos <lat> <lng>")
			m.writeStoryContent()
			return m, nil
		}
		if _, err := fmt.Sscanf(fields[1]+" "+fields[2], "%f %f", &lat, &lng); err != nil {
			m.appendLine("Usage: /pos <lat> <lng>")
			m.writeStoryContent()
			return m, nil
		}
		m.loading = true
		m.progressTick = 0
		m.writeStoryContent()
		return m, tea.Batch(m.sendPosition(lat, lng), progressTick())

	case "/checkin":
		if m.navSession == nil {
			m.appendLine("No navigation session. Start one with /go.")
			m.writeStoryContent()
			return m, nil
		}
		m.loading = true
		m.progressTick = 0
		m.writeStoryContent()
		return m, tea.Batch(m.sendCheckIn(), progressTick())

	case "/memories":
		m.loading = true
		m.progressTick = 0
		m.writeStoryContent()
		return m, tea.Batch(m.fetchMemories(false), progressTick())

	case "/copy":
		m.loading = true
		m.progressTick = 0
		m.writeStoryContent()
		return m, tea.Batch(m.fetchMemories(true), progressTick())

	case "/reset":
		m.loading = true
		m.progressTick = 0
		m.writeStoryContent()
		return m, tea.Batch(m.sendReset(), progressTick())

	default:
		m.appendLine(errorStyle.Render("Unknown command. Try /help."))
		m.writeStoryContent()
		return m, nil
	}
}

func (m ConsoleUI) submitCurrentLevel(story string) (tea.Model, tea.Cmd) {
	level := m.currentLevel()
	if level == nil {
		m.appendLine("Nothing left to attempt.")
		m.writeStoryContent()
		return m, nil
	}

	m.loading = true
	m.progressTick = 0
	if story != "" {
		m.appendLine(userStyle.Render("You: ") + story)
	}
	m.writeStoryContent()

	result := passingResult(level.GameType())
	result.Story = story
	return m, tea.Batch(m.sendAttempt(level.ID, result), progressTick())
}

// passingResult builds a result that satisfies the level's completion rule.
func passingResult(gameType minigame.GameType) minigame.Result {
	switch gameType {
	case minigame.TypeWordScramble:
		return minigame.Result{Correct: true}
	case minigame.TypeMemoryMatch, minigame.TypeColorMatch:
		return minigame.Result{AllMatched: true}
	case minigame.TypeTrivia:
		return minigame.Result{Score: minigame.DefaultPassingScore}
	case minigame.TypePhotoHunt:
		return minigame.Result{}
	default:
		return minigame.Result{Completed: true}
	}
}

func (m ConsoleUI) sendAttempt(levelID int, result minigame.Result) tea.Cmd {
	return func() tea.Msg {
		outcome, err := submitAttempt(m.client, m.config.APIBaseURL, m.questFile, levelID, result)
		return attemptMsg{outcome, err}
	}
}

func (m ConsoleUI) startNavigation(levelID int) tea.Cmd {
	return func() tea.Msg {
		snap, err := createNavigationSession(m.client, m.config.APIBaseURL, m.questFile, levelID)
		return navigationMsg{snap, err}
	}
}

func (m ConsoleUI) sendPosition(lat, lng float64) tea.Cmd {
	sessionID := m.navSession.ID
	return func() tea.Msg {
		snap, err := postPosition(m.client, m.config.APIBaseURL, sessionID, lat, lng)
		return navigationMsg{snap, err}
	}
}

func (m ConsoleUI) sendCheckIn() tea.Cmd {
	sessionID := m.navSession.ID
	return func() tea.Msg {
		snap, err := manualCheckIn(m.client, m.config.APIBaseURL, sessionID)
		return navigationMsg{snap, err}
	}
}

func (m ConsoleUI) fetchMemories(copyToClipboard bool) tea.Cmd {
	return func() tea.Msg {
		entries, err := getMemories(m.client, m.config.APIBaseURL)
		if err != nil {
			return memoriesMsg{nil, false, err}
		}
		if copyToClipboard {
			if err := clipboard.WriteAll(formatMemoryBook(entries)); err != nil {
				return memoriesMsg{entries, false, fmt.Errorf("failed to copy to clipboard: %w", err)}
			}
			return memoriesMsg{entries, true, nil}
		}
		return memoriesMsg{entries, false, nil}
	}
}

func formatMemoryBook(entries []memory.Entry) string {
	var b strings.Builder
	b.WriteString("Memory Book\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("Level %d: %s\n", e.LevelID, e.Title))
		if e.StoryPoint != "" {
			b.WriteString("  " + e.StoryPoint + "\n")
		}
		for _, p := range e.Photos {
			b.WriteString("  photo: " + p + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m ConsoleUI) sendReset() tea.Cmd {
	return func() tea.Msg {
		return resetMsg{resetProgress(m.client, m.config.APIBaseURL)}
	}
}

func (m ConsoleUI) reloadQuest() tea.Cmd {
	return func() tea.Msg {
		q, err := getQuest(m.client, m.config.APIBaseURL, m.questFile)
		if err != nil {
			return questLoadedMsg{nil, nil, err}
		}
		rec, err := getProgress(m.client, m.config.APIBaseURL)
		return questLoadedMsg{q, rec, err}
	}
}

func (m ConsoleUI) loadQuests() tea.Cmd {
	return func() tea.Msg {
		names, questMap, err := listQuests(m.client, m.config.APIBaseURL)
		return questsLoadedMsg{names, questMap, err}
	}
}

func (m ConsoleUI) updateQuestModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case questsLoadedMsg:
		m.loadingQuests = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.quests = msg.quests
			m.questMap = msg.questMap
		}

	case questLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.quest = msg.quest
			m.record = msg.record
			m.showQuestModal = false
			if m.width > 0 && m.height > 0 {
				m.resizePanels()
			}
			m.describeLevel()
			m.writeStoryContent()
			m.writeMetadata()
			m.textarea.Focus()
			m.ready = true
		}
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.loadingQuests {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		if m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedQuest > 0 {
				m.selectedQuest--
			}
		case tea.KeyDown:
			if m.selectedQuest < len(m.quests)-1 {
				m.selectedQuest++
			}
		case tea.KeyEnter:
			if len(m.quests) > 0 {
				m.questFile = m.questMap[m.quests[m.selectedQuest]]
				m.loading = true
				return m, m.reloadQuest()
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if !m.showQuestModal {
					m.textarea.Focus()
					return m, textarea.Blink
				}
				return m, nil
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to leave the adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderQuestModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.loadingQuests {
		content.WriteString(modalTitleStyle.Render("Loading Quests..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Please wait while we fetch available quests..."))
	} else if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to load quests: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else if m.loading {
		content.WriteString(modalTitleStyle.Render("Loading Adventure..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Fetching your quest and progress..."))
	} else {
		content.WriteString(modalTitleStyle.Render("Select a Quest"))
		content.WriteString("\n\n")

		for i, name := range m.quests {
			if i == m.selectedQuest {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", name)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", name)))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuestModal {
		return m.renderQuestModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	storyWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - storyWidth - 6

	storyPanel := storyPanelStyle.Width(storyWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.storyViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", storyWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, storyPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.storyViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}

	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
