package views

import (
	"context"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
)

func adminShell(title string, body func(ctx context.Context, w *writer)) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8"><meta name="robots" content="noindex"><title>`)
		w.text(title)
		w.raw(`</title><link rel="stylesheet" href="/public/folio.css"></head><body class="admin"><main class="container">`)
		body(ctx, w)
		w.raw(`</main><script src="/public/nav-loader.js" defer></script></body></html>`)
	})
}

func AdminLogin(showError bool, csrf string) templ.Component {
	return adminShell("Admin login", func(ctx context.Context, w *writer) {
		w.raw(`<h1>Admin</h1><form class="form" method="post" action="/admin/login/">`)
		csrfField(w, csrf)
		if showError {
			w.raw(`<p class="notice notice-error" role="alert">Invalid password.</p>`)
		}
		w.raw(`<label class="field"><span>Password</span><input type="password" name="password" autocomplete="current-password" required></label>`)
		w.raw(`<button type="submit" class="btn">Sign in</button></form>`)
	})
}

// AdminInbox lists stored contact messages, newest first.
func AdminInbox(msgs []InboxMessage, unread int, csrf string) templ.Component {
	return adminShell("Inbox", func(ctx context.Context, w *writer) {
		adminNav(w, csrf)
		w.raw(`<h1>Inbox <small>`)
		w.text(humanize.Comma(int64(unread)) + " unread")
		w.raw(`</small></h1>`)
		if len(msgs) == 0 {
			w.raw(`<p class="empty">No messages yet.</p>`)
			return
		}
		w.raw(`<ul id="inbox" class="inbox">`)
		for _, m := range msgs {
			w.render(ctx, InboxRow(m, csrf))
		}
		w.raw(`</ul>`)
	})
}

// InboxRow renders one message; it is also the fragment returned after
// marking a message read.
func InboxRow(m InboxMessage, csrf string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		cls := "inbox-row"
		if !m.Read {
			cls += " is-unread"
		}
		w.raw(`<li`)
		w.attr("id", "msg-"+m.ID)
		w.attr("class", cls)
		w.raw(`><header><strong>`)
		w.text(m.Name)
		w.raw(`</strong> <a`)
		w.href("mailto:" + m.Email)
		w.raw(`>`)
		w.text(m.Email)
		w.raw(`</a> <time`)
		w.attr("datetime", m.ReceivedAt.UTC().Format(time.RFC3339))
		w.raw(`>`)
		w.text(Ago(m.ReceivedAt))
		w.raw(`</time></header><p class="inbox-body">`)
		w.text(m.Body)
		w.raw(`</p><div class="inbox-actions">`)
		if !m.Read {
			w.raw(`<form method="post"`)
			w.attr("action", "/admin/messages/"+m.ID+"/read/")
			w.attr("data-fragment", "#msg-"+m.ID)
			w.raw(`>`)
			csrfField(w, csrf)
			w.raw(`<button class="btn btn-small" type="submit">Mark read</button></form>`)
		}
		w.raw(`<button class="btn btn-small btn-danger" type="button" data-method="DELETE"`)
		w.attr("data-url", "/admin/messages/"+m.ID+"/")
		w.attr("data-target", "#msg-"+m.ID)
		w.raw(`>Delete</button></div></li>`)
	})
}

func Subscribers(subs []Subscriber, csrf string) templ.Component {
	return adminShell("Subscribers", func(ctx context.Context, w *writer) {
		adminNav(w, csrf)
		w.raw(`<h1>Subscribers <small>`)
		w.text(humanize.Comma(int64(len(subs))))
		w.raw(`</small></h1><table class="table"><thead><tr><th>Email</th><th>Joined</th></tr></thead><tbody>`)
		for _, s := range subs {
			w.raw(`<tr><td>`)
			w.text(s.Email)
			w.raw(`</td><td>`)
			w.text(Ago(s.CreatedAt))
			w.raw(`</td></tr>`)
		}
		w.raw(`</tbody></table>`)
	})
}

func adminNav(w *writer, csrf string) {
	w.raw(`<nav class="admin-nav"><a href="/admin/">Inbox</a> <a href="/admin/subscribers/">Subscribers</a> <a href="/">Site</a>`)
	w.raw(`<form method="post" action="/admin/logout/">`)
	csrfField(w, csrf)
	w.raw(`<button class="btn btn-small btn-outline" type="submit">Log out</button></form></nav>`)
}

func NotFound() templ.Component {
	return errorPage("Not found", "404", "That page does not exist.")
}

func ServerError() templ.Component {
	return errorPage("Server error", "500", "Something went wrong. Please try again later.")
}

func errorPage(title, code, text string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8"><title>`)
		w.text(title)
		w.raw(`</title><link rel="stylesheet" href="/public/folio.css"></head><body class="error-page"><main class="container"><h1>`)
		w.text(code)
		w.raw(`</h1><p>`)
		w.text(text)
		w.raw(`</p><a class="btn" href="/">Back home</a></main></body></html>`)
	})
}
