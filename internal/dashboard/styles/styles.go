package styles

import "github.com/charmbracelet/lipgloss"

var (
	// 색상 정의
	Primary   = lipgloss.Color("#04B575")
	Secondary = lipgloss.Color("#3C3C3C")
	Success   = lipgloss.Color("#04B575")
	Warning   = lipgloss.Color("#FFCC00")
	Error     = lipgloss.Color("#FF5F56")
	Muted     = lipgloss.Color("#626262")
	White     = lipgloss.Color("#FFFFFF")
	Cyan      = lipgloss.Color("#00CED1")

	// 트랜잭션 상태별 색상
	TxStateColors = map[string]lipgloss.Color{
		"pending_confirmation": Warning,
		"confirmed":            Success,
		"reverted":             Error,
	}

	// 로그 레벨별 색상
	LogLevelColors = map[string]lipgloss.Color{
		"DEBUG": Muted,
		"INFO":  Cyan,
		"WARN":  Warning,
		"ERROR": Error,
		"FATAL": Error,
	}

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			Background(Primary).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error)

	// 테이블 스타일
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(White).
				Background(Secondary).
				Padding(0, 1)

	TableRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableSelectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(White).
				Background(Primary).
				Padding(0, 1)

	// 도움말 바 스타일
	HelpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	HelpBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginTop(1)
)

// TxStateStyle 트랜잭션 상태에 맞는 스타일 반환
func TxStateStyle(state string) lipgloss.Style {
	color, ok := TxStateColors[state]
	if !ok {
		color = Muted
	}
	return lipgloss.NewStyle().Foreground(color)
}

// LogLevelStyle 로그 레벨에 맞는 스타일 반환
func LogLevelStyle(level string) lipgloss.Style {
	color, ok := LogLevelColors[level]
	if !ok {
		color = White
	}
	return lipgloss.NewStyle().Foreground(color)
}
