//go:build js && wasm

// Command navwasm runs the navigation tracker in the browser. Build it with
// GOOS=js GOARCH=wasm and serve it at the URL named by nav.wasm_url.
package main

import (
	"strconv"
	"syscall/js"

	"github.com/alexchen-dev/folio/navstate"
)

func main() {
	window := js.Global()
	doc := window.Get("document")
	nav := doc.Call("getElementById", "site-nav")
	if nav.IsNull() {
		return
	}
	ds := nav.Get("dataset")

	opts := []navstate.Option{
		navstate.WithHideThreshold(intData(ds, "hideThreshold", navstate.DefaultHideThreshold)),
		navstate.WithProbeBias(intData(ds, "probeBias", navstate.DefaultProbeBias)),
		navstate.WithScrolledThreshold(intData(ds, "scrolledThreshold", navstate.DefaultScrolledThreshold)),
	}
	if v := ds.Get("resetOnMiss"); v.Type() == js.TypeString && v.String() == "true" {
		opts = append(opts, navstate.WithResetOnMiss())
	}

	reg, err := layout(window, doc)
	if err != nil {
		warn(window, err)
		reg = navstate.MustRegistry()
	}
	tr := navstate.New(reg, opts...)
	render(nav, tr.Seed(scrollY(window)))

	onScroll := js.FuncOf(func(js.Value, []js.Value) any {
		if st, ch := tr.OnScroll(scrollY(window)); ch != 0 {
			render(nav, st)
		}
		return nil
	})
	onResize := js.FuncOf(func(js.Value, []js.Value) any {
		reg, err := layout(window, doc)
		if err != nil {
			warn(window, err)
			return nil
		}
		tr.SetRegistry(reg)
		return nil
	})
	window.Call("addEventListener", "scroll", onScroll, map[string]any{"passive": true})
	window.Call("addEventListener", "resize", onResize)
	window.Call("addEventListener", "load", onResize)

	select {}
}

// layout measures every known section present on the page.
func layout(window, doc js.Value) (*navstate.Registry, error) {
	y := scrollY(window)
	var sections []navstate.Section
	for _, id := range navstate.SectionIDs() {
		el := doc.Call("getElementById", string(id))
		if el.IsNull() {
			continue
		}
		top := el.Call("getBoundingClientRect").Get("top").Float()
		sections = append(sections, navstate.Section{ID: id, Top: int(top) + y})
	}
	return navstate.NewRegistry(sections...)
}

func render(nav js.Value, st navstate.State) {
	cl := nav.Get("classList")
	cl.Call("toggle", "nav-hidden", !st.Visible)
	cl.Call("toggle", "nav-visible", st.Visible)
	cl.Call("toggle", "nav-scrolled", st.Scrolled)
	nav.Get("dataset").Set("active", string(st.Active))

	links := nav.Call("querySelectorAll", ".nav-link")
	for i := 0; i < links.Length(); i++ {
		link := links.Index(i)
		active := link.Get("dataset").Get("section").String() == string(st.Active)
		link.Get("classList").Call("toggle", "is-active", active)
	}
}

func scrollY(window js.Value) int {
	return window.Get("scrollY").Int()
}

func intData(ds js.Value, key string, def int) int {
	v := ds.Get(key)
	if v.Type() != js.TypeString {
		return def
	}
	n, err := strconv.Atoi(v.String())
	if err != nil {
		return def
	}
	return n
}

func warn(window js.Value, err error) {
	window.Get("console").Call("warn", "nav tracker:", err.Error())
}
