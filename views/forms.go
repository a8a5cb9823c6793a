package views

import (
	"context"

	"github.com/a-h/templ"
)

// ContactForm renders the contact form fragment. It is swapped in place
// after each submission, so it carries its own notices and field errors.
func ContactForm(v ContactView, csrf string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<form id="contact-form" class="form" method="post" action="/contact/" data-fragment="#contact-form"`)
		if v.Submitting {
			w.raw(` aria-busy="true"`)
		}
		w.raw(`>`)
		csrfField(w, csrf)
		notice(w, v.Notice)
		field(w, "name", "Name", "text", v.Name, v.Errors["name"])
		field(w, "email", "Email", "email", v.Email, v.Errors["email"])

		w.raw(`<label class="field"><span>Message</span><textarea name="message" rows="5" required`)
		if v.Errors["message"] != "" {
			w.raw(` aria-invalid="true"`)
		}
		w.raw(`>`)
		w.text(v.Message)
		w.raw(`</textarea>`)
		fieldError(w, v.Errors["message"])
		w.raw(`</label>`)

		w.raw(`<button type="submit" class="btn"`)
		if v.Submitting {
			w.raw(` disabled>Sending...`)
		} else {
			w.raw(`>Send Message`)
		}
		w.raw(`</button></form>`)
	})
}

// NewsletterForm renders the sign-up box under the blog teasers.
func NewsletterForm(v NewsletterView, csrf string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<form id="newsletter-form" class="form newsletter" method="post" action="/newsletter/" data-fragment="#newsletter-form">`)
		csrfField(w, csrf)
		if v.Done {
			w.raw(`<p class="notice notice-success" role="status">Thanks for subscribing!</p></form>`)
			return
		}
		w.raw(`<p>Get new posts in your inbox.</p><div class="newsletter-row"><input type="email" name="email" placeholder="you@example.com" required`)
		w.attr("value", v.Email)
		if v.Error != "" {
			w.raw(` aria-invalid="true"`)
		}
		w.raw(`><button type="submit" class="btn">Subscribe</button></div>`)
		fieldError(w, v.Error)
		w.raw(`</form>`)
	})
}

func csrfField(w *writer, token string) {
	if token == "" {
		return
	}
	w.raw(`<input type="hidden" name="_csrf"`)
	w.attr("value", token)
	w.raw(`>`)
}

func notice(w *writer, n *Notice) {
	if n == nil {
		return
	}
	role := "status"
	if n.Kind == "error" {
		role = "alert"
	}
	w.raw(`<p`)
	w.attr("class", "notice notice-"+n.Kind)
	w.attr("role", role)
	w.raw(`>`)
	w.text(n.Text)
	w.raw(`<button type="button" class="notice-close" aria-label="Dismiss" data-dismiss>&times;</button></p>`)
}

func field(w *writer, name, label, typ, value, errText string) {
	w.raw(`<label class="field"><span>`)
	w.text(label)
	w.raw(`</span><input required`)
	w.attr("type", typ)
	w.attr("name", name)
	w.attr("value", value)
	if errText != "" {
		w.raw(` aria-invalid="true"`)
	}
	w.raw(`>`)
	fieldError(w, errText)
	w.raw(`</label>`)
}

func fieldError(w *writer, text string) {
	if text == "" {
		return
	}
	w.raw(`<small class="field-error">`)
	w.text(text)
	w.raw(`</small>`)
}
