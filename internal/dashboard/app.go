package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lokichain/loki-node/internal/dashboard/api"
	"github.com/lokichain/loki-node/internal/dashboard/components"
	"github.com/lokichain/loki-node/internal/dashboard/styles"
)

const (
	maxLogLines   = 10
	maxPendingRow = 8
)

// Config는 대시보드 설정
type Config struct {
	Host        string
	Ports       []int
	LogPrefixes []string
	RefreshSec  int
}

// NodeInfo는 노드 상태 정보
type NodeInfo struct {
	Port    int
	Online  bool
	Status  *api.NodeStatus
	Mempool *api.MempoolResp
	Error   string
}

// Model은 Bubbletea 모델
type Model struct {
	config       Config
	nodes        []NodeInfo
	clients      []*api.Client
	selectedNode int
	totalPending int
	width        int
	height       int
	logViewer    *components.LogViewer
	help         help.Model
	quitting     bool
}

// Run은 대시보드 실행
func Run(config Config) error {
	p := tea.NewProgram(initialModel(config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func initialModel(config Config) Model {
	clients := make([]*api.Client, len(config.Ports))
	for i, port := range config.Ports {
		clients[i] = api.NewClient(config.Host, port)
	}
	return newModel(config, clients)
}

func newModel(config Config, clients []*api.Client) Model {
	if config.RefreshSec <= 0 {
		config.RefreshSec = 1
	}

	nodes := make([]NodeInfo, len(clients))
	for i := range nodes {
		if i < len(config.Ports) {
			nodes[i].Port = config.Ports[i]
		}
	}

	return Model{
		config:    config,
		nodes:     nodes,
		clients:   clients,
		logViewer: components.NewLogViewer(config.LogPrefixes, maxLogLines),
		help:      help.New(),
	}
}

// tickMsg는 주기적 업데이트 메시지
type tickMsg time.Time

// nodeUpdateMsg는 노드 상태 업데이트 메시지
type nodeUpdateMsg struct {
	index   int
	status  *api.NodeStatus
	mempool *api.MempoolResp
	err     error
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.config.RefreshSec),
		m.fetchAllNodes(),
	)
}

func tickCmd(seconds int) tea.Cmd {
	return tea.Tick(time.Duration(seconds)*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchAllNodes() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.clients))
	for i := range m.clients {
		cmds = append(cmds, m.fetchNode(i))
	}
	return tea.Batch(cmds...)
}

func (m Model) fetchNode(index int) tea.Cmd {
	client := m.clients[index]
	return func() tea.Msg {
		status, err := client.GetStatus()
		if err != nil {
			return nodeUpdateMsg{index: index, err: err}
		}

		// 멤풀 조회 실패는 상태만 표시
		pool, _ := client.GetMempool()

		return nodeUpdateMsg{index: index, status: status, mempool: pool}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, keys.Refresh):
			return m, m.fetchAllNodes()

		case key.Matches(msg, keys.Up):
			if m.selectedNode > 0 {
				m.selectNode(m.selectedNode - 1)
			}

		case key.Matches(msg, keys.Down):
			if m.selectedNode < len(m.nodes)-1 {
				m.selectNode(m.selectedNode + 1)
			}

		case key.Matches(msg, keys.Jump):
			idx := int(msg.String()[0] - '1')
			if idx < len(m.nodes) {
				m.selectNode(idx)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		cmds = append(cmds, tickCmd(m.config.RefreshSec), m.fetchAllNodes())
		m.logViewer.Refresh()

	case nodeUpdateMsg:
		if msg.index < len(m.nodes) {
			node := &m.nodes[msg.index]
			if msg.err != nil {
				node.Online = false
				node.Error = msg.err.Error()
			} else {
				node.Online = true
				node.Status = msg.status
				node.Mempool = msg.mempool
				node.Error = ""
			}
			m.updateTotalPending()
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) selectNode(idx int) {
	m.selectedNode = idx
	m.logViewer.SetNode(idx)
}

func (m *Model) updateTotalPending() {
	m.totalPending = 0
	for _, node := range m.nodes {
		if node.Online && node.Status != nil {
			m.totalPending += node.Status.MempoolSize
		}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderNodesTable())
	b.WriteString("\n")

	if m.selectedNode < len(m.nodes) {
		b.WriteString(m.renderNodeDetails(m.nodes[m.selectedNode]))
		b.WriteString("\n")
	}

	b.WriteString(m.logViewer.Render(m.width))
	b.WriteString("\n")

	b.WriteString(styles.HelpBarStyle.Render(m.help.View(keys)))

	return b.String()
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render(" Loki Mempool Monitor ")

	onlineCount := 0
	for _, n := range m.nodes {
		if n.Online {
			onlineCount++
		}
	}

	statusText := styles.MutedStyle.Render(fmt.Sprintf("노드: %d/%d 온라인 | 대기 tx: %d",
		onlineCount, len(m.nodes), m.totalPending))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(statusText) - 2
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + statusText
}

const rowFormat = "%-4s %-6s %-14s %-8s %-4s %-10s"

func (m Model) renderNodesTable() string {
	var b strings.Builder

	header := fmt.Sprintf(rowFormat, "#", "Port", "Network", "Mempool", "WS", "Hasher")
	b.WriteString(styles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for i, node := range m.nodes {
		row := renderNodeRow(i, node)
		if i == m.selectedNode {
			b.WriteString(styles.TableSelectedRowStyle.Render(row))
		} else {
			b.WriteString(styles.TableRowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderNodeRow(index int, node NodeInfo) string {
	num := fmt.Sprintf("%d", index+1)
	port := fmt.Sprintf("%d", node.Port)

	if !node.Online || node.Status == nil {
		return fmt.Sprintf(rowFormat, num, port, "OFFLINE", "-", "-", "-")
	}

	s := node.Status
	return fmt.Sprintf(rowFormat, num, port, s.Network,
		fmt.Sprintf("%d", s.MempoolSize), fmt.Sprintf("%d", s.WSClients), s.Hasher)
}

func (m Model) renderNodeDetails(node NodeInfo) string {
	var b strings.Builder

	b.WriteString(styles.HeaderStyle.Render(
		fmt.Sprintf("Node %d Pending (Port: %d)", m.selectedNode+1, node.Port)))
	b.WriteString("\n")

	if !node.Online {
		b.WriteString(styles.ErrorStyle.Render("  ✗ 오프라인"))
		if node.Error != "" {
			b.WriteString("\n")
			b.WriteString(styles.MutedStyle.Render("  " + node.Error))
		}
		return b.String()
	}

	if node.Mempool == nil || len(node.Mempool.Transactions) == 0 {
		b.WriteString(styles.MutedStyle.Render("  대기 중인 트랜잭션 없음"))
		return b.String()
	}

	for i, entry := range node.Mempool.Transactions {
		if i == maxPendingRow {
			b.WriteString(styles.MutedStyle.Render(
				fmt.Sprintf("  ... 외 %d건", len(node.Mempool.Transactions)-maxPendingRow)))
			break
		}
		tx := entry.Transaction
		b.WriteString(fmt.Sprintf("  %s %s %s/%s %d %s gas=%d %s\n",
			shorten(tx.Hash, 12),
			shorten(tx.Sender, 20),
			tx.Data.App, tx.Data.Operation,
			tx.Amount.Amount, tx.Amount.Denom,
			tx.Gas,
			styles.TxStateStyle(entry.State).Render(entry.State)))
	}

	return strings.TrimRight(b.String(), "\n")
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
