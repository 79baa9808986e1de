package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/nbt-compare/nbt"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	changedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	onlyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD580"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type diffStatus int

const (
	diffEqual diffStatus = iota
	diffChanged
	diffLeftOnly
	diffRightOnly
)

// diffNode is one row of the merged left/right tree.
type diffNode struct {
	name     string
	left     *nbt.Value
	right    *nbt.Value
	status   diffStatus
	children []*diffNode
	depth    int
	expanded bool
}

type interactiveModel struct {
	err       error
	leftPath  string
	rightPath string
	exclude   string
	root      *diffNode
	rows      []*diffNode
	filter    textinput.Model
	filtering bool
	selected  int
	height    int
}

type loadedMsg struct {
	err  error
	root *diffNode
}

func newInteractiveModel(leftPath, rightPath, exclude string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "member name"
	ti.Prompt = "filter: "
	ti.Width = 30
	return &interactiveModel{
		leftPath:  leftPath,
		rightPath: rightPath,
		exclude:   exclude,
		filter:    ti,
		height:    24,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadDocuments
}

func (m *interactiveModel) loadDocuments() tea.Msg {
	left, err := readDocument(m.leftPath)
	if err != nil {
		return loadedMsg{err: fmt.Errorf("read %s: %w", m.leftPath, err)}
	}
	right, err := readDocument(m.rightPath)
	if err != nil {
		return loadedMsg{err: fmt.Errorf("read %s: %w", m.rightPath, err)}
	}

	lv, err := nbt.Parse(left)
	if err != nil {
		return loadedMsg{err: fmt.Errorf("left input: %w", err)}
	}
	rv, err := nbt.Parse(right)
	if err != nil {
		return loadedMsg{err: fmt.Errorf("right input: %w", err)}
	}

	if m.exclude != "" {
		delete(lv.Compound, m.exclude)
		delete(rv.Compound, m.exclude)
	}

	root := buildDiff("(root)", &lv, &rv, 0)
	root.expanded = true
	expandChanged(root)
	return loadedMsg{root: root}
}

// buildDiff merges one left/right pair into a diff node and recurses
// into compound members (by name) and list elements (by position).
func buildDiff(name string, left, right *nbt.Value, depth int) *diffNode {
	n := &diffNode{name: name, left: left, right: right, depth: depth}

	switch {
	case left == nil:
		n.status = diffRightOnly
	case right == nil:
		n.status = diffLeftOnly
	case left.Equal(*right):
		n.status = diffEqual
	default:
		n.status = diffChanged
	}

	n.children = diffChildren(left, right, depth+1)
	return n
}

func diffChildren(left, right *nbt.Value, depth int) []*diffNode {
	if kindOf(left) == nbt.KindCompound || kindOf(right) == nbt.KindCompound {
		return diffCompound(left, right, depth)
	}
	if kindOf(left) == nbt.KindList || kindOf(right) == nbt.KindList {
		return diffList(left, right, depth)
	}
	return nil
}

func diffCompound(left, right *nbt.Value, depth int) []*diffNode {
	names := make(map[string]struct{})
	if left != nil && left.Kind == nbt.KindCompound {
		for name := range left.Compound {
			names[name] = struct{}{}
		}
	}
	if right != nil && right.Kind == nbt.KindCompound {
		for name := range right.Compound {
			names[name] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	children := make([]*diffNode, 0, len(sorted))
	for _, name := range sorted {
		children = append(children, buildDiff(name,
			compoundMember(left, name), compoundMember(right, name), depth))
	}
	return children
}

func diffList(left, right *nbt.Value, depth int) []*diffNode {
	count := listLen(left)
	if r := listLen(right); r > count {
		count = r
	}
	children := make([]*diffNode, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, buildDiff(fmt.Sprintf("[%d]", i),
			listElem(left, i), listElem(right, i), depth))
	}
	return children
}

func kindOf(v *nbt.Value) nbt.Kind {
	if v == nil {
		return nbt.KindSpan
	}
	return v.Kind
}

func compoundMember(v *nbt.Value, name string) *nbt.Value {
	if v == nil || v.Kind != nbt.KindCompound {
		return nil
	}
	if member, ok := v.Compound[name]; ok {
		return &member
	}
	return nil
}

func listLen(v *nbt.Value) int {
	if v == nil || v.Kind != nbt.KindList {
		return 0
	}
	return len(v.List)
}

func listElem(v *nbt.Value, i int) *nbt.Value {
	if v == nil || v.Kind != nbt.KindList || i >= len(v.List) {
		return nil
	}
	return &v.List[i]
}

// expandChanged opens every branch that holds a difference so the
// first paint shows all divergent paths.
func expandChanged(n *diffNode) bool {
	open := n.status != diffEqual
	for _, c := range n.children {
		if expandChanged(c) {
			open = true
		}
	}
	if len(n.children) > 0 {
		n.expanded = open || n.expanded
	}
	return open
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
				m.filter.Blur()
				if msg.String() == "esc" {
					m.filter.SetValue("")
				}
				m.reflow()
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.reflow()
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}

		case "enter", " ":
			if m.selected < len(m.rows) {
				n := m.rows[m.selected]
				if len(n.children) > 0 {
					n.expanded = !n.expanded
					m.reflow()
				}
			}

		case "/":
			m.filtering = true
			m.filter.Focus()
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.root = msg.root
		m.reflow()
	}

	return m, nil
}

// reflow recomputes the visible rows from expansion state and the
// active filter, clamping the selection.
func (m *interactiveModel) reflow() {
	m.rows = m.rows[:0]
	if m.root != nil {
		m.flatten(m.root, strings.ToLower(m.filter.Value()))
	}
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *interactiveModel) flatten(n *diffNode, filter string) {
	if filter != "" && !matchesFilter(n, filter) {
		return
	}
	m.rows = append(m.rows, n)
	if !n.expanded {
		return
	}
	for _, c := range n.children {
		m.flatten(c, filter)
	}
}

func matchesFilter(n *diffNode, filter string) bool {
	if strings.Contains(strings.ToLower(n.name), filter) {
		return true
	}
	for _, c := range n.children {
		if matchesFilter(c, filter) {
			return true
		}
	}
	return false
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return changedStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.root == nil {
		return "Loading documents..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("NBT Diff"))
	b.WriteString(fmt.Sprintf(" %s vs %s", m.leftPath, m.rightPath))
	if m.exclude != "" {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  (ignoring %q)", m.exclude)))
	}
	b.WriteString("\n")
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	visible := m.height - 6
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := start + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := start; i < end; i++ {
		row := m.formatRow(m.rows[i])
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • enter expand/collapse • / filter • q quit"))
	return b.String()
}

func (m *interactiveModel) formatRow(n *diffNode) string {
	indent := strings.Repeat("  ", n.depth)

	marker := "  "
	if len(n.children) > 0 {
		marker = "+ "
		if n.expanded {
			marker = "- "
		}
	}

	label := nameStyle.Render(n.name)
	switch n.status {
	case diffChanged:
		label = changedStyle.Render(n.name + " ≠")
	case diffLeftOnly:
		label = onlyStyle.Render(n.name + " (left only)")
	case diffRightOnly:
		label = onlyStyle.Render(n.name + " (right only)")
	}

	return indent + marker + label + " " + tagStyle.Render(describe(n.left, n.right))
}

// describe renders a short type-and-payload summary for one row.
func describe(left, right *nbt.Value) string {
	if left != nil && right != nil {
		ld, rd := describeOne(left), describeOne(right)
		if ld == rd {
			return ld
		}
		return ld + " → " + rd
	}
	if left != nil {
		return describeOne(left)
	}
	if right != nil {
		return describeOne(right)
	}
	return ""
}

func describeOne(v *nbt.Value) string {
	switch v.Kind {
	case nbt.KindCompound:
		return fmt.Sprintf("Compound{%d}", len(v.Compound))
	case nbt.KindList:
		return fmt.Sprintf("List[%d]", len(v.List))
	default:
		return fmt.Sprintf("%s %s", nbt.TagName(v.Tag), hexPreview(v.Span))
	}
}

func hexPreview(span []byte) string {
	const max = 8
	if len(span) <= max {
		return fmt.Sprintf("% x", span)
	}
	return fmt.Sprintf("% x … (%d bytes)", span[:max], len(span))
}

func runInteractive(leftPath, rightPath, exclude string) error {
	p := tea.NewProgram(newInteractiveModel(leftPath, rightPath, exclude), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
