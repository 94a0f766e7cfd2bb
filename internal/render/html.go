package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"rgResume/internal/markup"
	"rgResume/internal/resume"
)

// previewTemplateString 是预览与打印共用的 Go HTML 模板。
// A4 画布按 96 DPI 固定为 794px 宽，浏览器端截图与 PDF 都依赖这个尺寸。
const previewTemplateString = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: 'Georgia', 'Times New Roman', serif;
            font-size: 10.5pt;
            color: #1a1a1a;
            background: #f0f0f0; /* 仅用于调试 */
        }
        .a4-page {
            width: 794px; /* A4 @ 96 DPI */
            min-height: 1123px;
            aspect-ratio: 210/297;
            background: white;
            margin: 0;
            padding: 40px 48px;
            box-sizing: border-box; /* 确保 padding 包含在 width 内 */
        }
        a { color: inherit; }
        .header { text-align: center; margin-bottom: 12px; }
        .header h1 { margin: 0 0 4px; font-size: 22pt; letter-spacing: 1px; }
        .header .contact { font-size: 9.5pt; }
        .header .contact span + span::before { content: " | "; }
        .section { margin-bottom: 10px; }
        .section h2 {
            margin: 0 0 4px;
            font-size: 11pt;
            text-transform: uppercase;
            border-bottom: 1px solid #1a1a1a;
            padding-bottom: 2px;
        }
        .entry { margin-bottom: 6px; }
        .entry-head { display: flex; justify-content: space-between; }
        .entry-title { font-weight: bold; }
        .entry-detail { font-style: italic; font-size: 9.5pt; }
        .entry-meta { text-align: right; font-size: 9.5pt; white-space: nowrap; }
        .entry-links { font-size: 9pt; }
        .entry ul { margin: 2px 0 0; padding-left: 18px; }
        .entry li { margin-bottom: 1px; }
        .skills p { margin: 2px 0; }
        .languages span + span::before { content: ", "; }
    </style>
</head>
<body>
    <div id="a4-container" class="a4-page">
        <div class="header">
            <h1>{{.Header.FullName}}</h1>
            <div class="contact">
                {{if .Header.Phone}}<span>{{.Header.Phone}}</span>{{end}}
                {{if .Header.Email}}<span><a href="mailto:{{.Header.Email}}">{{.Header.Email}}</a></span>{{end}}
                {{if .Header.LinkedIn}}<span><a href="{{.Header.LinkedIn}}">LinkedIn</a></span>{{end}}
                {{if .Header.GitHub}}<span><a href="{{.Header.GitHub}}">GitHub</a></span>{{end}}
                {{if .Header.Location}}<span>{{.Header.Location}}</span>{{end}}
            </div>
        </div>

        {{range .Sections}}
        <div class="section" data-section="{{.Key}}">
            <h2>{{.Title}}</h2>

            {{if .Summary}}<p>{{inline .Summary}}</p>{{end}}

            {{range .Entries}}
            <div class="entry">
                <div class="entry-head">
                    <div>
                        <span class="entry-title">
                            {{if .TitleHref}}<a href="{{.TitleHref}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}
                        </span>
                        {{if .Detail}}<span class="entry-detail">| {{.Detail}}</span>{{end}}
                        {{range .Links}}<span class="entry-links">[<a href="{{.Href}}">{{.Label}}</a>]</span>{{end}}
                    </div>
                    <div class="entry-meta">
                        {{if .DateRange}}<div>{{.DateRange}}</div>{{end}}
                        {{if .Location}}<div>{{.Location}}</div>{{end}}
                    </div>
                </div>
                {{if .Subtitle}}
                <div class="entry-detail">
                    {{if .SubHref}}<a href="{{.SubHref}}">{{.Subtitle}}</a>{{else}}{{.Subtitle}}{{end}}
                </div>
                {{end}}
                {{if .Body}}<p>{{inline .Body}}</p>{{end}}
                {{if .Bullets}}
                <ul>
                    {{range .Bullets}}<li>{{inline .}}</li>{{end}}
                </ul>
                {{end}}
            </div>
            {{end}}

            {{if .SkillLines}}
            <div class="skills">
                {{range .SkillLines}}<p><strong>{{.Label}}:</strong> {{.Items}}</p>{{end}}
            </div>
            {{end}}

            {{if .Languages}}
            <p class="languages">
                {{range .Languages}}<span>{{.Language}} {{.Stars}}</span>{{end}}
            </p>
            {{end}}
        </div>
        {{end}}
    </div>
    <div id="pdf-render-ready" style="display:none"></div>
</body>
</html>
`

// editorTemplateString 渲染编辑表单：所有区块始终可见，
// 控件的 name / data-* 属性与编辑接口的字段名一一对应。
const editorTemplateString = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: sans-serif; font-size: 14px; margin: 0; padding: 16px; background: #fafafa; }
        .panel { background: white; border: 1px solid #ddd; border-radius: 6px; padding: 12px; margin-bottom: 12px; }
        .panel h2 { margin: 0 0 8px; font-size: 15px; }
        .panel-head { display: flex; justify-content: space-between; align-items: center; }
        .entry-form { border-top: 1px solid #eee; padding-top: 8px; margin-top: 8px; }
        label { display: block; font-size: 12px; color: #555; margin: 6px 0 2px; }
        input, textarea { width: 100%; box-sizing: border-box; padding: 4px 6px; }
        textarea { min-height: 60px; }
        button { font-size: 12px; }
    </style>
</head>
<body>
    <form class="panel" data-section="personalInfo">
        <h2>Personal Information</h2>
        {{range .PersonalFields}}
        <label>{{.Label}}</label>
        <input name="{{.Name}}" value="{{.Value}}" />
        {{end}}
    </form>

    {{range .Sections}}
    <div class="panel" data-section="{{.Key}}">
        <div class="panel-head">
            <h2>{{.Title}}</h2>
            <div>
                <button type="button" data-action="move-up" {{if not .CanMoveUp}}disabled{{end}}>&uarr;</button>
                <button type="button" data-action="move-down" {{if not .CanMoveDown}}disabled{{end}}>&darr;</button>
                {{if .CanAdd}}<button type="button" data-action="add">Add</button>{{end}}
                {{if .CanClear}}<button type="button" data-action="clear">Clear</button>{{end}}
            </div>
        </div>

        {{if eq .Key "professionalSummary"}}
        <textarea name="professional_summary">{{.SummaryRaw}}</textarea>
        {{end}}

        {{range .Entries}}
        <div class="entry-form" data-entry="{{.ID}}">
            {{range .Fields}}
            <label>{{.Label}}</label>
            {{if .Multiline}}<textarea name="{{.Name}}">{{.Value}}</textarea>{{else}}<input name="{{.Name}}" value="{{.Value}}" />{{end}}
            {{end}}
            <button type="button" data-action="remove">Remove</button>
        </div>
        {{end}}

        {{range .SkillLines}}
        <label>{{.Label}} (comma separated)</label>
        <input name="skills" data-category="{{.Category}}" value="{{.Items}}" />
        {{end}}
    </div>
    {{end}}
</body>
</html>
`

var (
	previewTemplate = template.Must(template.New("preview").
			Funcs(template.FuncMap{"inline": inlineHTML}).
			Parse(previewTemplateString))
	editorTemplate = template.Must(template.New("editor").Parse(editorTemplateString))
)

// HTML 将展示树渲染为完整的 HTML 页面。
func HTML(tree Tree) (string, error) {
	tmpl := previewTemplate
	if tree.Mode == ModeEditor {
		tmpl = editorTemplate
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, tree); err != nil {
		return "", fmt.Errorf("execute %s template: %w", tree.Mode, err)
	}
	return buf.String(), nil
}

// DocumentHTML 是 Render + HTML 的组合入口，导出流水线直接使用。
func DocumentHTML(doc resume.Document, mode Mode) (string, error) {
	return HTML(Render(doc, mode))
}

// inlineHTML 将行内标记节点序列化为转义后的 HTML。
// 文本内容始终经过 HTML 转义，只有节点结构本身产生标签。
func inlineHTML(nodes []markup.Node) template.HTML {
	var b strings.Builder
	for _, node := range nodes {
		text := template.HTMLEscapeString(node.Text)
		switch node.Kind {
		case markup.NodeBold:
			b.WriteString("<strong>" + text + "</strong>")
		case markup.NodeItalic:
			b.WriteString("<em>" + text + "</em>")
		case markup.NodeUnderline:
			b.WriteString("<u>" + text + "</u>")
		case markup.NodeLink:
			href := template.HTMLEscapeString(markup.NormalizeURL(node.Href))
			b.WriteString(`<a href="` + href + `">` + text + `</a>`)
		default:
			b.WriteString(text)
		}
	}
	return template.HTML(b.String())
}
