// Package views renders the site's HTML pages.
package views

import (
	"fmt"
	"strconv"
	"time"

	"beakers-site/pkg/models"
	"beakers-site/pkg/viewmodel"

	g "github.com/maragudk/gomponents"
	c "github.com/maragudk/gomponents/components"
	. "github.com/maragudk/gomponents/html"
)

func page(title string, body ...g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    title,
		Language: "en",
		Head: []g.Node{
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			Link(Rel("stylesheet"), Href("/static/site.css")),
		},
		Body: []g.Node{
			Header(A(Href("/"), g.Text("The Beakers"))),
			Main(Class("container"), g.Group(body)),
		},
	})
}

func IndexPage(articles []models.ArticleSummary, loc *time.Location) g.Node {
	items := make([]g.Node, 0, len(articles))
	for _, a := range articles {
		items = append(items, Li(
			A(Href("/article/"+a.Slug), g.Text(a.Title)),
			g.If(a.Category != "", Span(Class("category"), g.Text(a.Category))),
			P(g.Text(a.Description)),
			Small(g.Textf("%s · %d min read", viewmodel.FormatTimestamp(a.PublishedAt, loc), a.ReadingTime)),
		))
	}
	return page("Articles",
		H1(g.Text("Articles")),
		g.If(len(items) == 0, P(g.Text("No articles yet."))),
		Ul(Class("articles"), g.Group(items)),
	)
}

// ArticlePage shows an article with its quiz. selected holds the visitor's
// previous answers; result is non-nil once the quiz was submitted.
func ArticlePage(slug string, art *models.Article, selected []string, result *models.QuizResult, loc *time.Location) g.Node {
	authors := make([]g.Node, 0, len(art.Authors))
	for _, a := range art.Authors {
		authors = append(authors, Li(A(Href("/author/"+a.Slug), g.Text(a.Name))))
	}

	return page(art.Title,
		H1(g.Text(art.Title)),
		P(Class("description"), g.Text(art.Description)),
		P(Class("meta"),
			g.Textf("Published %s", viewmodel.FormatTimestamp(art.PublishedAt, loc)),
			g.If(art.UpdatedAt != nil, g.Textf(" · updated %s", viewmodel.FormatTimestamp(deref(art.UpdatedAt), loc))),
			g.Textf(" · %d min read", art.ReadingTime),
		),
		g.If(art.Image.URL != "", Figure(
			Img(Src(art.Image.URL), Alt(art.Image.Alt)),
			FigCaption(g.Text(art.Image.Caption)),
		)),
		Div(Class("body"), g.Raw(art.Body)),
		Section(Class("people"),
			H2(g.Text("Authors")),
			Ul(g.Group(authors)),
			P(g.Text("Reviewed by "), A(Href("/professor/"+art.Professor.Slug), g.Text(art.Professor.Name))),
		),
		g.If(len(art.Questions) > 0, quiz(slug, art.Questions, selected, result)),
	)
}

func quiz(slug string, questions []models.Question, selected []string, result *models.QuizResult) g.Node {
	items := make([]g.Node, 0, len(questions))
	for i, q := range questions {
		name := "q" + strconv.Itoa(i)
		answers := make([]g.Node, 0, len(q.Answers))
		for _, ans := range q.Answers {
			answers = append(answers, Label(
				Input(Type("radio"), Name(name), Value(ans), g.If(i < len(selected) && selected[i] == ans, Checked())),
				g.Text(ans),
			))
		}
		var verdict g.Node
		if result != nil && i < len(result.Questions) {
			grade := result.Questions[i]
			switch {
			case grade.Correct:
				verdict = P(Class("correct"), g.Text("Correct!"))
			case grade.Answered:
				verdict = P(Class("incorrect"), g.Textf("Incorrect. The answer is %q.", grade.CorrectAnswer))
			default:
				verdict = P(Class("unanswered"), g.Text("Not answered."))
			}
		}
		items = append(items, Li(P(g.Text(q.Question)), g.Group(answers), verdict))
	}

	var score g.Node
	if result != nil {
		score = P(Class("score"), g.Textf("You scored %d out of %d.", result.Score, result.Total))
	}

	return Section(Class("quiz"),
		H2(g.Text("Quiz")),
		score,
		FormEl(Method("post"), Action("/article/"+slug),
			Ol(g.Group(items)),
			Button(Type("submit"), g.Text("Check answers")),
		),
	)
}

func PersonPage(p *models.Person, articles []models.ArticleSummary) g.Node {
	titles := make(map[string]string, len(articles))
	for _, a := range articles {
		titles[a.Slug] = a.Title
	}
	items := make([]g.Node, 0, len(p.Articles))
	for _, slug := range p.Articles {
		title := titles[slug]
		if title == "" {
			title = slug
		}
		items = append(items, Li(A(Href("/article/"+slug), g.Text(title))))
	}
	return page(p.Name,
		H1(g.Text(p.Name)),
		P(Class("role"), g.Text(p.Role)),
		P(g.Text(p.Bio)),
		H2(g.Text("Articles")),
		Ul(g.Group(items)),
	)
}

func LoginPage() g.Node {
	return page("Sign in",
		H1(g.Text("Editor sign in")),
		A(Class("button"), Href("/login/github"), g.Text("Sign in with GitHub")),
	)
}

func EditorPage(articles []models.ArticleSummary) g.Node {
	items := make([]g.Node, 0, len(articles))
	for _, a := range articles {
		items = append(items, Li(
			g.Text(a.Title+" "),
			Code(g.Text(a.Path)),
			g.If(a.IsDirty, Span(Class("dirty"), g.Text(" (modified)"))),
		))
	}
	return page("Editor",
		H1(g.Text("Editor")),
		P(A(Href("/logout"), g.Text("Sign out"))),
		Ul(g.Group(items)),
	)
}

func ErrorPage(status int, message string) g.Node {
	return page(fmt.Sprintf("%d", status),
		H1(g.Textf("%d", status)),
		P(g.Text(message)),
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
