package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/net/html"

	"resume-maker/internal/domain"
	"resume-maker/internal/markup"
	"resume-maker/internal/model"
	"resume-maker/internal/theme"
)

// RootID is the id of the rendered document's root element.
const RootID = "resumeContent"

type contactLine struct {
	field string
	icon  string
}

var contactLines = []contactLine{
	{model.FieldEmail, "fas fa-envelope"},
	{model.FieldPhone, "fas fa-phone"},
	{model.FieldLocation, "fas fa-map-marker-alt"},
	{model.FieldWebsite, "fas fa-globe"},
	{model.FieldLinkedIn, "fab fa-linkedin"},
}

// itemLayout maps the fields of a section item onto display lines.
type itemLayout struct {
	title, titlePlaceholder       string
	subtitle, subtitlePlaceholder string
	meta                          func(model.SectionItem) []*html.Node
	detail                        func(model.SectionItem) string
}

var layouts = map[model.Section]itemLayout{
	model.SectionExperience: {
		title: "position", titlePlaceholder: "Position",
		subtitle: "company", subtitlePlaceholder: "Company",
		meta: func(it model.SectionItem) []*html.Node {
			return []*html.Node{markup.Text(withSuffix(dateRange(it), it["location"], ""))}
		},
		detail: field("description"),
	},
	model.SectionEducation: {
		title: "degree", titlePlaceholder: "Degree",
		subtitle: "institution", subtitlePlaceholder: "Institution",
		meta: func(it model.SectionItem) []*html.Node {
			return textMeta(withSuffix(it["graduationDate"], it["gpa"], "GPA: "))
		},
		detail: field("description"),
	},
	model.SectionProjects: {
		title: "name", titlePlaceholder: "Project Name",
		subtitle: "technologies",
		meta: func(it model.SectionItem) []*html.Node {
			nodes := []*html.Node{markup.Text(dateRange(it))}
			if strings.TrimSpace(it["url"]) == "" {
				return nodes
			}
			link := markup.El("a", "", markup.Text("View Project"))
			if u, ok := safeHref(it["url"]); ok {
				link = markup.WithAttrs(link, markup.Attr{Key: "href", Val: u}, markup.Attr{Key: "target", Val: "_blank"})
			}
			return append(nodes, markup.Text(" • "), link)
		},
		detail: field("description"),
	},
	model.SectionCertifications: {
		title: "name", titlePlaceholder: "Certification Name",
		subtitle: "issuer", subtitlePlaceholder: "Issuer",
		meta: func(it model.SectionItem) []*html.Node {
			return textMeta(withSuffix(it["date"], it["expiry"], "Expires: "))
		},
		detail: func(it model.SectionItem) string {
			if id := it["credentialId"]; id != "" {
				return "Credential ID: " + id
			}
			return ""
		},
	},
	model.SectionLanguages: {
		title: "name", titlePlaceholder: "Language",
		subtitle: "proficiency", subtitlePlaceholder: "Proficiency Level",
	},
}

func field(name string) func(model.SectionItem) string {
	return func(it model.SectionItem) string { return it[name] }
}

func dateRange(it model.SectionItem) string {
	end := it["endDate"]
	if end == "" {
		end = "Present"
	}
	return strings.TrimSpace(it["startDate"] + " - " + end)
}

func withSuffix(base, extra, label string) string {
	if extra == "" {
		return base
	}
	return strings.TrimSpace(base + " • " + label + extra)
}

func textMeta(s string) []*html.Node {
	if s == "" {
		return nil
	}
	return []*html.Node{markup.Text(s)}
}

func orDefault(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}

// Render builds the document tree of r. The structure does not depend on tpl;
// the template only appears as a class on the root element.
func Render(r model.Resume, tpl domain.TemplateID) *html.Node {
	root := markup.WithAttrs(markup.El("div", "resume "+string(tpl)), markup.Attr{Key: "id", Val: RootID})
	markup.Append(root, renderHeader(r), renderContact(r))
	if r.Summary != "" {
		markup.Append(root, markup.El("div", "resume-section",
			markup.El("h2", "", markup.Text("Summary")),
			markup.El("p", "summary-text", markup.Text(r.Summary)),
		))
	}
	for _, s := range model.Sections {
		markup.Append(root, renderSection(s, r.Section(s)))
	}
	return root
}

func renderHeader(r model.Resume) *html.Node {
	var photo *html.Node
	if r.Photo != "" {
		photo = markup.WithAttrs(markup.El("img", "profile-photo"),
			markup.Attr{Key: "src", Val: r.Photo}, markup.Attr{Key: "alt", Val: "Profile Photo"})
	}
	return markup.El("div", "resume-header",
		photo,
		markup.El("div", "header-text",
			markup.El("h1", "", markup.Text(orDefault(r.FullName, "Your Name"))),
			markup.El("h2", "job-title", markup.Text(orDefault(r.JobTitle, "Your Job Title"))),
		),
	)
}

func renderContact(r model.Resume) *html.Node {
	var items []*html.Node
	for _, c := range contactLines {
		v := r.Scalar(c.field)
		if v == "" {
			continue
		}
		items = append(items, markup.El("div", "contact-item",
			markup.El("i", c.icon), markup.Text(" "+v)))
	}
	if len(items) == 0 {
		return nil
	}
	return markup.El("div", "contact-info", items...)
}

func renderSection(s model.Section, items []model.SectionItem) *html.Node {
	if len(items) == 0 {
		return nil
	}
	content := markup.El("div", "section-content")
	if s == model.SectionSkills {
		markup.Append(content, renderSkills(items))
	} else {
		layout := layouts[s]
		for _, it := range items {
			markup.Append(content, renderItem(layout, it))
		}
	}
	return markup.El("div", "resume-section",
		markup.El("h2", "", markup.Text(model.Schema[s].Title)),
		content,
	)
}

func renderItem(l itemLayout, it model.SectionItem) *html.Node {
	n := markup.El("div", "section-item",
		markup.El("div", "item-header",
			markup.El("div", "item-title", markup.Text(orDefault(it[l.title], l.titlePlaceholder))),
			markup.El("div", "item-subtitle", markup.Text(orDefault(it[l.subtitle], l.subtitlePlaceholder))),
		),
	)
	if l.meta != nil {
		if meta := l.meta(it); len(meta) > 0 {
			markup.Append(n, markup.El("div", "item-meta", meta...))
		}
	}
	if l.detail != nil {
		if d := l.detail(it); d != "" {
			markup.Append(n, markup.El("p", "item-description", markup.Text(d)))
		}
	}
	return n
}

func renderSkills(items []model.SectionItem) *html.Node {
	list := markup.El("div", "skills-list")
	for _, it := range items {
		if name := it["name"]; name != "" {
			markup.Append(list, markup.El("span", "skill-tag", markup.Text(name)))
		}
	}
	if list.FirstChild == nil {
		return nil
	}
	return markup.El("div", "section-item", list)
}

// Zoom bounds of the preview.
const (
	MinZoom  = 0.5
	MaxZoom  = 2.0
	ZoomStep = 0.1
)

// ZoomAction changes the preview zoom.
type ZoomAction string

const (
	ZoomIn    ZoomAction = "in"
	ZoomOut   ZoomAction = "out"
	ZoomReset ZoomAction = "reset"
)

// ParseZoomAction accepts "in", "out" and "reset".
func ParseZoomAction(s string) (ZoomAction, error) {
	switch a := ZoomAction(strings.ToLower(s)); a {
	case ZoomIn, ZoomOut, ZoomReset:
		return a, nil
	}
	return "", fmt.Errorf("unknown zoom action %q", s)
}

// Apply returns the zoom level after a.
func (a ZoomAction) Apply(z float64) float64 {
	switch a {
	case ZoomIn:
		z += ZoomStep
	case ZoomOut:
		z -= ZoomStep
	default:
		return 1
	}
	z = math.Round(z*10) / 10
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// Preview is a rendered document with its styling applied.
type Preview struct {
	Tree           *html.Node        `json:"-"`
	HTML           string            `json:"html"`
	Template       domain.TemplateID `json:"template"`
	AccentColor    string            `json:"accentColor"`
	Stylesheet     string            `json:"stylesheet"`
	Zoom           float64           `json:"zoom"`
	ContainerStyle string            `json:"containerStyle"`
	ETag           string            `json:"etag"`
}

// Styler applies the active template, accent color and zoom to a rendered tree.
type Styler struct {
	themes *theme.Registry
}

func NewStyler(themes *theme.Registry) *Styler {
	return &Styler{themes: themes}
}

// Apply is idempotent: applying it twice to the same tree gives the same preview.
func (s *Styler) Apply(tree *html.Node, sel domain.TemplateSelection, zoom float64) Preview {
	markup.SetAttr(tree, "class", "resume "+string(sel.Template))
	body := markup.MustRender(tree)
	css := ""
	if s.themes != nil {
		css = s.themes.CSS(sel)
	}
	containerStyle := fmt.Sprintf("transform: scale(%g); transform-origin: top center;", zoom)
	sum := xxh3.HashString(css + "\x00" + body + "\x00" + containerStyle)
	return Preview{
		Tree:           tree,
		HTML:           body,
		Template:       sel.Template,
		AccentColor:    sel.AccentColor,
		Stylesheet:     css,
		Zoom:           zoom,
		ContainerStyle: containerStyle,
		ETag:           fmt.Sprintf("%016x", sum),
	}
}
