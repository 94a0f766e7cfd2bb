// Package markup 实现简历富文本的行内标记：
// **加粗**、*斜体*、__下划线__ 与 [文本](链接)。
// 存储层只保留纯文本标记，预览渲染时再展开为节点序列。
package markup

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Format 是编辑器可施加的行内格式。
type Format string

const (
	FormatBold      Format = "bold"
	FormatItalic    Format = "italic"
	FormatUnderline Format = "underline"
)

// 链接插入的校验错误：双字段都必填，缺失时操作不生效，
// 由前端保持对话框打开让用户补齐。
var (
	ErrLinkTextRequired = errors.New("link text is required")
	ErrLinkURLRequired  = errors.New("link url is required")
)

// NodeKind 标识展开结果中的节点类型。
type NodeKind string

const (
	NodeText      NodeKind = "text"
	NodeBold      NodeKind = "bold"
	NodeItalic    NodeKind = "italic"
	NodeUnderline NodeKind = "underline"
	NodeLink      NodeKind = "link"
)

// Node 是展开后的单个行内片段。Href 仅链接节点使用。
type Node struct {
	Kind NodeKind `json:"kind"`
	Text string   `json:"text"`
	Href string   `json:"href,omitempty"`
}

// ApplyFormat 将 [start,end) 选区包进对应的定界符。
// 选区为空时在光标处插入一对空定界符，供用户在其中继续输入。
// 选区外的文本逐字节保持不变；越界的偏移会被收拢到合法范围。
func ApplyFormat(format Format, start, end int, text string) string {
	start, end = clampRange(start, end, len(text))
	selected := text[start:end]

	var wrapped string
	switch format {
	case FormatBold:
		wrapped = "**" + selected + "**"
	case FormatItalic:
		wrapped = "*" + selected + "*"
	case FormatUnderline:
		wrapped = "__" + selected + "__"
	default:
		return text
	}
	return text[:start] + wrapped + text[end:]
}

// InsertLink 用链接标记替换 [start,end) 选区。
// display 与 url 必填，否则返回原文与校验错误；
// 选区原有文本被丢弃，以 display 为准（二者可以不同）。
func InsertLink(start, end int, text, display, url string) (string, error) {
	if strings.TrimSpace(display) == "" {
		return text, ErrLinkTextRequired
	}
	if strings.TrimSpace(url) == "" {
		return text, ErrLinkURLRequired
	}
	start, end = clampRange(start, end, len(text))
	link := "[" + display + "](" + url + ")"
	return text[:start] + link + text[end:], nil
}

func clampRange(start, end, max int) (int, int) {
	if start < 0 {
		start = 0
	}
	if start > max {
		start = max
	}
	if end < start {
		end = start
	}
	if end > max {
		end = max
	}
	return start, end
}

// 展开按固定顺序做一次性文本替换：加粗、斜体、下划线、链接。
// 不做递归解析，嵌套标记属于未定义行为；未配对的定界符因
// 正则要求成对出现而原样保留。
var (
	boldPattern      = regexp.MustCompile(`\*\*([^\x00]*?)\*\*`)
	italicPattern    = regexp.MustCompile(`\*([^\x00]*?)\*`)
	underlinePattern = regexp.MustCompile(`__([^\x00]*?)__`)
	linkPattern      = regexp.MustCompile(`\[([^\x00]*?)\]\(([^\x00]*?)\)`)
	markerPattern    = regexp.MustCompile("\x00(\\d+)\x00")
)

// Expand 将带标记的文本展开为行内节点序列。
// 不含任何定界符的文本原样返回单个 text 节点（幂等）。
func Expand(text string) []Node {
	// 替换流程以 NUL 字节做占位哨兵，文本自带的 NUL（JSON 的 u0000
	// 转义）会伪造哨兵序号，先整体剔除。
	text = strings.ReplaceAll(text, "\x00", "")
	if text == "" {
		return nil
	}

	var styled []Node
	substitute := func(src string, pattern *regexp.Regexp, build func(groups []string) Node) string {
		return pattern.ReplaceAllStringFunc(src, func(match string) string {
			groups := pattern.FindStringSubmatch(match)
			styled = append(styled, build(groups))
			return "\x00" + strconv.Itoa(len(styled)-1) + "\x00"
		})
	}

	out := substitute(text, boldPattern, func(g []string) Node {
		return Node{Kind: NodeBold, Text: g[1]}
	})
	out = substitute(out, italicPattern, func(g []string) Node {
		return Node{Kind: NodeItalic, Text: g[1]}
	})
	out = substitute(out, underlinePattern, func(g []string) Node {
		return Node{Kind: NodeUnderline, Text: g[1]}
	})
	out = substitute(out, linkPattern, func(g []string) Node {
		return Node{Kind: NodeLink, Text: g[1], Href: NormalizeURL(g[2])}
	})

	var nodes []Node
	rest := out
	for {
		loc := markerPattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		if plain := rest[:loc[0]]; plain != "" {
			nodes = append(nodes, Node{Kind: NodeText, Text: plain})
		}
		idx, err := strconv.Atoi(rest[loc[2]:loc[3]])
		if err == nil && idx < len(styled) {
			nodes = append(nodes, styled[idx])
		} else {
			nodes = append(nodes, Node{Kind: NodeText, Text: rest[loc[0]:loc[1]]})
		}
		rest = rest[loc[1]:]
	}
	if rest != "" {
		nodes = append(nodes, Node{Kind: NodeText, Text: rest})
	}
	return nodes
}

// NormalizeURL 为缺少协议的链接补上 https 前缀。
func NormalizeURL(url string) string {
	if url == "" || strings.HasPrefix(url, "http") {
		return url
	}
	return "https://" + url
}
