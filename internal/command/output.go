package command

import (
	"fmt"
	"html"
	"strings"

	"termfolio/internal/content"
)

const welcomeMarkup = `<p class="text-green-400">Welcome to my interactive portfolio terminal.</p>` +
	`<p>Type <span class="text-green-400">'help'</span> to see a list of available commands.</p>` +
	`<p>You can also click on the commands in the header.</p>`

// Output is the producer table: the markup a command prints. Clear prints
// nothing; wiping the transcript is the caller's job.
func Output(c Command, p *content.Portfolio) string {
	if p == nil {
		p = content.Default()
	}
	switch c.Kind {
	case KindHelp:
		return helpOutput()
	case KindAbout:
		return aboutOutput(p)
	case KindProjects:
		return projectsOutput(p)
	case KindSkills:
		return skillsOutput(p)
	case KindContact:
		return contactOutput(p)
	case KindCertifications:
		return certificationsOutput(p)
	case KindWelcome:
		return welcomeMarkup
	case KindClear:
		return ""
	default:
		return NotFound(c.Token)
	}
}

// NotFound is the error line for an unrecognized token. The token is HTML
// escaped, so the markup holds a&lt;b for a<b; markup.PlainText gives the
// token back verbatim.
func NotFound(token string) string {
	return fmt.Sprintf(`<span class="text-red-500">bash: %s: command not found</span>`, html.EscapeString(token))
}

// Echo is the transcript line recording a submission after the prompt.
func Echo(prompt, token string) string {
	line := `<span class="text-green-400 font-bold">` + html.EscapeString(prompt) + `</span>`
	if token != "" {
		line += " " + html.EscapeString(token)
	}
	return line
}

func helpOutput() string {
	var b strings.Builder
	b.WriteString("<h3>Available commands:</h3><table>")
	for _, k := range HeaderKinds {
		fmt.Fprintf(&b, `<tr><td class="pr-4 text-green-400">%s</td><td>- %s</td></tr>`, k, k.Description())
	}
	b.WriteString("</table>")
	return b.String()
}

func aboutOutput(p *content.Portfolio) string {
	var b strings.Builder
	for _, para := range p.About {
		b.WriteString("<p>" + html.EscapeString(para) + "</p>")
	}
	return b.String()
}

func projectsOutput(p *content.Portfolio) string {
	var b strings.Builder
	b.WriteString(`<h3><span class="text-green-400">✓</span> Projects:</h3><ul>`)
	for i, proj := range p.Projects {
		b.WriteString(`<li class="mb-4">`)
		fmt.Fprintf(&b, "<p>%d. %s</p>", i+1, html.EscapeString(proj.Title))
		fmt.Fprintf(&b, `<p class="pl-4">%s</p>`, html.EscapeString(proj.Description))
		fmt.Fprintf(&b, `<p class="pl-4 text-gray-400">Technologies: %s</p>`, html.EscapeString(proj.Tech))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func skillsOutput(p *content.Portfolio) string {
	var b strings.Builder
	b.WriteString("<h3>🛠️ Skills:</h3>")
	for _, cat := range p.Skills {
		b.WriteString(`<div class="mb-2">`)
		fmt.Fprintf(&b, `<h4 class="underline">%s:</h4>`, html.EscapeString(cat.Category))
		fmt.Fprintf(&b, `<p class="text-gray-300">%s</p>`, html.EscapeString(strings.Join(cat.List, ", ")))
		b.WriteString("</div>")
	}
	return b.String()
}

func contactOutput(p *content.Portfolio) string {
	var b strings.Builder
	b.WriteString("<p>You can reach me via:</p><ul>")
	for _, link := range p.Contact {
		target := ""
		if link.External {
			target = ` target="_blank"`
		}
		fmt.Fprintf(&b, `<li>%s %s: <a href="%s"%s class="terminal-link">%s</a></li>`,
			link.Icon,
			html.EscapeString(link.Label),
			html.EscapeString(link.URL),
			target,
			html.EscapeString(link.Text),
		)
	}
	b.WriteString("</ul>")
	return b.String()
}

func certificationsOutput(p *content.Portfolio) string {
	var b strings.Builder
	b.WriteString("<h3>📜 Certifications</h3><ul>")
	for _, cert := range p.Certifications {
		b.WriteString("<li>- " + html.EscapeString(cert) + "</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
