package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/alexchen-dev/folio/content"
	"github.com/alexchen-dev/folio/navstate"
)

// Page renders the whole single-page portfolio.
func Page(d PageData) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.render(ctx, head(d.Config, d.Meta, d.Site))
		w.raw(`<body class="page">`)
		w.render(ctx, NavBar(d.Site, d.Nav))
		w.raw(`<main>`)
		for _, id := range navstate.SectionIDs() {
			if c, ok := Section(id, d); ok {
				w.render(ctx, c)
			}
		}
		w.raw(`</main>`)
		w.render(ctx, Footer(d.Site))
		w.raw(`<script src="/public/nav-loader.js" defer></script></body></html>`)
	})
}

// Section returns the component for one page section, for partial refreshes.
func Section(id navstate.SectionID, d PageData) (templ.Component, bool) {
	switch id {
	case navstate.Home:
		return Hero(d.Site), true
	case navstate.About:
		return About(d.Site), true
	case navstate.Projects:
		return Projects(d.Site.Projects), true
	case navstate.Skills:
		return Skills(d.Site.Skills), true
	case navstate.Blog:
		return Blog(d.Site.Posts, d.Newsletter, d.CSRF), true
	case navstate.Contact:
		return ContactSection(d.Site, d.Contact, d.CSRF), true
	}
	return nil, false
}

func head(cfg SiteConfig, meta PageMeta, site *content.Site) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		title := meta.Title
		if title == "" {
			title = cfg.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = cfg.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		w.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw(`<title>`)
		w.text(title)
		w.raw(`</title><meta name="description"`)
		w.attr("content", desc)
		w.raw(`><link rel="canonical"`)
		w.href(meta.URL)
		w.raw(`><meta property="og:title"`)
		w.attr("content", title)
		w.raw(`><meta property="og:description"`)
		w.attr("content", desc)
		w.raw(`><meta property="og:type"`)
		w.attr("content", ogType)
		w.raw(`><meta property="og:url"`)
		w.attr("content", meta.URL)
		w.raw(`><link rel="alternate" type="application/rss+xml" href="/feed.xml"`)
		w.attr("title", cfg.Name)
		w.raw(`><link rel="icon" href="/favicon.svg" type="image/svg+xml">`)
		w.raw(`<link rel="stylesheet" href="/public/folio.css">`)
		w.raw(`<script type="application/ld+json">`, WebsiteJsonLD(cfg), `</script>`)
		if site != nil {
			var sameAs []string
			for _, s := range site.Socials {
				sameAs = append(sameAs, s.Href)
			}
			w.raw(`<script type="application/ld+json">`,
				PersonJsonLD(cfg, site.Profile.Name, site.Profile.Headline, site.Profile.Location, sameAs),
				`</script>`)
		}
		w.raw(`</head>`)
	})
}

// NavBar renders the fixed navigation in its initial state: visible, at the
// top, with the first section active. The wasm tracker takes over from there.
func NavBar(site *content.Site, nav NavConfig) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		initial := navstate.Initial()
		w.raw(`<nav id="site-nav" class="nav nav-visible"`)
		w.attr("data-hide-threshold", itoa(nav.HideThreshold))
		w.attr("data-probe-bias", itoa(nav.ProbeBias))
		w.attr("data-scrolled-threshold", itoa(nav.ScrolledThreshold))
		if nav.ResetOnMiss {
			w.attr("data-reset-on-miss", "true")
		}
		if nav.WasmURL != "" {
			w.attr("data-wasm", nav.WasmURL)
		}
		w.attr("data-active", string(initial.Active))
		w.raw(`><div class="nav-inner"><a class="nav-brand" href="#home">`)
		w.text(site.Profile.Initials)
		w.raw(`</a>`)
		// Small screens collapse the links behind this toggle.
		w.raw(`<button type="button" class="nav-toggle" data-nav-toggle aria-controls="nav-links" aria-expanded="false" aria-label="Open menu">`)
		w.raw(`<span class="nav-toggle-bar"></span><span class="nav-toggle-bar"></span><span class="nav-toggle-bar"></span></button>`)
		w.raw(`<ul id="nav-links" class="nav-links">`)
		for _, l := range site.Nav {
			cls := "nav-link"
			if l.Section == initial.Active {
				cls += " is-active"
			}
			w.raw(`<li><a`)
			w.attr("class", cls)
			w.href(l.Href())
			w.attr("data-section", string(l.Section))
			w.raw(`>`)
			w.text(l.Name)
			w.raw(`</a></li>`)
		}
		w.raw(`</ul>`)
		if site.Profile.ResumeURL != "" {
			w.raw(`<a class="btn btn-outline nav-resume" download`)
			w.href(site.Profile.ResumeURL)
			w.raw(`>Resume</a>`)
		}
		w.raw(`</div></nav>`)
	})
}

func sectionOpen(w *writer, id navstate.SectionID, eyebrow, title string) {
	w.raw(`<section`)
	w.attr("id", string(id))
	w.attr("class", "section section-"+string(id))
	w.raw(`><div class="container">`)
	if title != "" {
		w.raw(`<header class="section-head"><span class="eyebrow">`)
		w.text(eyebrow)
		w.raw(`</span><h2>`)
		w.text(title)
		w.raw(`</h2></header>`)
	}
}

func sectionClose(w *writer) { w.raw(`</div></section>`) }

func Hero(site *content.Site) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		p := site.Profile
		sectionOpen(w, navstate.Home, "", "")
		w.raw(`<div class="hero"><p class="hero-hello">Hello, I'm</p><h1 class="hero-name">`)
		w.text(p.Name)
		w.raw(`</h1><p class="hero-headline">`)
		w.text(p.Headline)
		w.raw(`</p><p class="hero-tagline">`)
		w.text(p.Tagline)
		w.raw(`</p><div class="hero-actions"><a class="btn" href="#projects">View Projects</a>`)
		w.raw(`<a class="btn btn-outline" href="#contact">Get in Touch</a></div>`)
		w.raw(`<a class="hero-scroll" href="#about">Scroll to explore</a></div>`)
		sectionClose(w)
	})
}

func About(site *content.Site) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		sectionOpen(w, navstate.About, "Get to know", "About Me")
		w.raw(`<div class="about"><div class="about-bio">`)
		for _, para := range site.Profile.Bio {
			w.raw(`<p>`)
			w.text(para)
			w.raw(`</p>`)
		}
		if site.Profile.Location != "" {
			w.raw(`<p class="about-location">`)
			w.text(site.Profile.Location)
			w.raw(`</p>`)
		}
		w.raw(`</div><ul class="stats">`)
		for _, s := range site.Stats {
			w.raw(`<li`)
			w.attr("class", "stat "+AccentClass(s.Color))
			w.raw(`><strong>`)
			w.text(s.Value)
			w.raw(`</strong><span>`)
			w.text(s.Label)
			w.raw(`</span></li>`)
		}
		w.raw(`</ul></div>`)
		sectionClose(w)
	})
}

func Projects(projects []content.Project) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		sectionOpen(w, navstate.Projects, "Portfolio", "Featured Projects")
		w.raw(`<div class="cards">`)
		for _, p := range projects {
			w.raw(`<article`)
			w.attr("class", "card "+AccentClass(p.Color))
			w.raw(`>`)
			if p.Image != "" {
				w.raw(`<img loading="lazy"`)
				w.attr("src", p.Image)
				w.attr("alt", p.Title)
				w.raw(`>`)
			}
			w.raw(`<div class="card-body"><h3>`)
			w.text(p.Title)
			w.raw(`</h3><p>`)
			w.text(p.Description)
			w.raw(`</p><ul class="tags">`)
			for _, t := range p.Tags {
				w.raw(`<li class="tag">`)
				w.text(t)
				w.raw(`</li>`)
			}
			w.raw(`</ul><div class="card-links">`)
			if p.GitHub != "" {
				w.raw(`<a rel="noopener" target="_blank"`)
				w.href(p.GitHub)
				w.raw(`>Code</a>`)
			}
			if p.Live != "" {
				w.raw(`<a rel="noopener" target="_blank"`)
				w.href(p.Live)
				w.raw(`>Live</a>`)
			}
			w.raw(`</div></div></article>`)
		}
		w.raw(`</div>`)
		sectionClose(w)
	})
}

func Skills(categories []content.SkillCategory) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		sectionOpen(w, navstate.Skills, "Expertise", "Skills & Technologies")
		w.raw(`<div class="skills">`)
		for _, c := range categories {
			w.raw(`<div`)
			w.attr("class", "skill-group "+AccentClass(c.Color))
			w.raw(`><h3>`)
			w.text(c.Name)
			w.raw(`</h3><ul>`)
			for _, s := range c.Skills {
				w.raw(`<li class="skill"><span class="skill-name">`)
				w.text(s.Name)
				w.raw(`</span><span class="skill-level">`, itoa(s.Level), `%</span>`)
				w.raw(`<span class="skill-bar"><span class="skill-fill" style="width:`, itoa(s.Level), `%"></span></span></li>`)
			}
			w.raw(`</ul></div>`)
		}
		w.raw(`</div>`)
		sectionClose(w)
	})
}

func Blog(posts []content.Post, news NewsletterView, csrf string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		sectionOpen(w, navstate.Blog, "Blog", "Latest Thoughts")
		w.raw(`<div class="cards">`)
		for _, p := range posts {
			w.raw(`<article`)
			if p.Slug != "" {
				w.attr("id", "post-"+p.Slug)
			}
			w.attr("class", "card post "+AccentClass(p.Color))
			w.raw(`>`)
			if p.Image != "" {
				w.raw(`<img loading="lazy"`)
				w.attr("src", p.Image)
				w.attr("alt", p.Title)
				w.raw(`>`)
			}
			w.raw(`<div class="card-body"><p class="post-meta"><span class="post-category">`)
			w.text(p.Category)
			w.raw(`</span> <time`)
			w.attr("datetime", p.Date)
			w.raw(`>`)
			w.text(p.DisplayDate())
			w.raw(`</time> <span>`)
			w.text(p.ReadTime)
			w.raw(`</span></p><h3>`)
			w.text(p.Title)
			w.raw(`</h3><p>`)
			w.text(p.Excerpt)
			w.raw(`</p>`)
			if p.URL != "" {
				w.raw(`<a class="card-more"`)
				w.href(p.URL)
				w.raw(`>Read more</a>`)
			}
			w.raw(`</div></article>`)
		}
		w.raw(`</div>`)
		w.render(ctx, NewsletterForm(news, csrf))
		sectionClose(w)
	})
}

func ContactSection(site *content.Site, form ContactView, csrf string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		sectionOpen(w, navstate.Contact, "Contact", "Let's Work Together")
		w.raw(`<div class="contact"><div class="contact-info"><ul>`)
		for _, c := range site.Contact {
			w.raw(`<li><span class="contact-label">`)
			w.text(c.Label)
			w.raw(`</span> `)
			if c.Href != "" {
				w.raw(`<a`)
				w.href(c.Href)
				w.raw(`>`)
				w.text(c.Value)
				w.raw(`</a>`)
			} else {
				w.text(c.Value)
			}
			w.raw(`</li>`)
		}
		w.raw(`</ul><p class="contact-follow">Follow me on</p>`)
		socials(w, site.Socials)
		w.raw(`</div>`)
		w.render(ctx, ContactForm(form, csrf))
		w.raw(`</div>`)
		sectionClose(w)
	})
}

func socials(w *writer, links []content.SocialLink) {
	w.raw(`<ul class="socials">`)
	for _, s := range links {
		w.raw(`<li><a rel="noopener" target="_blank"`)
		w.href(s.Href)
		w.raw(`>`)
		w.text(s.Label)
		w.raw(`</a></li>`)
	}
	w.raw(`</ul>`)
}

func Footer(site *content.Site) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<footer class="footer"><div class="container footer-grid"><div><p class="footer-name">`)
		w.text(site.Profile.Name)
		w.raw(`</p><p>`)
		w.text(site.Profile.Tagline)
		w.raw(`</p></div><div><h4>Quick Links</h4><ul>`)
		for _, l := range site.QuickLinks {
			w.raw(`<li><a`)
			w.href(l.Href())
			w.raw(`>`)
			w.text(l.Name)
			w.raw(`</a></li>`)
		}
		w.raw(`</ul></div><div><h4>Get in Touch</h4><ul>`)
		for _, c := range site.Contact {
			w.raw(`<li>`)
			w.text(c.Label + ": " + c.Value)
			w.raw(`</li>`)
		}
		w.raw(`</ul>`)
		socials(w, site.Socials)
		w.raw(`</div></div></footer>`)
	})
}
