// Package browsertest provides a scripted, in-memory browser.Page for unit
// tests of page objects.
//
// Elements are registered by key. A key is the chain of selectors used to
// reach the element joined with " >> ". Text filters are appended as
// "|<text>", roles are written "role=<role>|<name>", text lookups
// "text=<text>" and frames "frame=<selector>". First, Last and Nth resolve to
// the same key as their parent.
package browsertest

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sequra/e2e-fixtures/internal/browser"
)

// Element is the state of every element matched by one key.
type Element struct {
	Count   int
	Value   string
	Checked bool
	Hidden  bool

	OnClick func()
	OnFill  func(value string)
}

func (e *Element) visible() bool {
	return e != nil && e.Count > 0 && !e.Hidden
}

// Page implements browser.Page over a map of elements.
type Page struct {
	CurrentURL string
	Elements   map[string]*Element
	// Actions records every interaction in order, e.g. "click .btn".
	Actions []string
	Gotos   []string
	Reloads int
	Waits   []time.Duration

	OnGoto   func(url string)
	OnReload func()
	// OnPress receives the key and the key of the focused element.
	OnPress func(key, focused string)

	focused string
}

var _ browser.Page = (*Page)(nil)

// NewPage returns an empty page at url.
func NewPage(url string) *Page {
	return &Page{CurrentURL: url, Elements: map[string]*Element{}}
}

// Add registers a single element under key and returns it.
func (p *Page) Add(key string) *Element {
	el := &Element{Count: 1}
	p.Elements[key] = el
	return el
}

// Set registers el under key.
func (p *Page) Set(key string, el *Element) *Element {
	p.Elements[key] = el
	return el
}

// Get returns the element registered under key, or nil.
func (p *Page) Get(key string) *Element {
	return p.Elements[key]
}

// Did reports whether action was recorded.
func (p *Page) Did(action string) bool {
	for _, a := range p.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Count returns how many times action was recorded.
func (p *Page) Count(action string) int {
	n := 0
	for _, a := range p.Actions {
		if a == action {
			n++
		}
	}
	return n
}

func (p *Page) record(format string, args ...interface{}) {
	p.Actions = append(p.Actions, fmt.Sprintf(format, args...))
}

// Join chains selector keys the same way locators do.
func Join(parts ...string) string {
	var out []string
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, " >> ")
}

// Has appends a text filter to a key.
func Has(key, text string) string {
	return key + "|" + text
}

// Role is the key of a GetByRole lookup.
func Role(role, name string) string {
	return "role=" + role + "|" + name
}

// Text is the key of a GetByText lookup.
func Text(text string) string {
	return "text=" + text
}

// Frame is the key of a FrameLocator lookup.
func Frame(selector string) string {
	return "frame=" + selector
}

type scope struct {
	page *Page
	key  string
}

func (s scope) Locator(selector string, opts ...browser.LocatorOptions) browser.Locator {
	key := Join(s.key, selector)
	if len(opts) > 0 && opts[0].HasText != "" {
		key = Has(key, opts[0].HasText)
	}
	return &locator{page: s.page, key: key}
}

func (s scope) FrameLocator(selector string) browser.FrameLocator {
	return scope{page: s.page, key: Join(s.key, Frame(selector))}
}

func (s scope) GetByRole(role, name string) browser.Locator {
	return &locator{page: s.page, key: Join(s.key, Role(role, name))}
}

func (s scope) GetByText(text string) browser.Locator {
	return &locator{page: s.page, key: Join(s.key, Text(text))}
}

func (p *Page) root() scope {
	return scope{page: p}
}

// Locator implements browser.Scope.
func (p *Page) Locator(selector string, opts ...browser.LocatorOptions) browser.Locator {
	return p.root().Locator(selector, opts...)
}

// FrameLocator implements browser.Scope.
func (p *Page) FrameLocator(selector string) browser.FrameLocator {
	return p.root().FrameLocator(selector)
}

// GetByRole implements browser.Scope.
func (p *Page) GetByRole(role, name string) browser.Locator {
	return p.root().GetByRole(role, name)
}

// GetByText implements browser.Scope.
func (p *Page) GetByText(text string) browser.Locator {
	return p.root().GetByText(text)
}

// URL implements browser.Page.
func (p *Page) URL() string {
	return p.CurrentURL
}

// Goto implements browser.Page.
func (p *Page) Goto(url string) error {
	p.CurrentURL = url
	p.Gotos = append(p.Gotos, url)
	p.record("goto %s", url)
	if p.OnGoto != nil {
		p.OnGoto(url)
	}
	return nil
}

// Reload implements browser.Page.
func (p *Page) Reload() error {
	p.Reloads++
	p.record("reload")
	if p.OnReload != nil {
		p.OnReload()
	}
	return nil
}

// Wait implements browser.Page. It returns immediately.
func (p *Page) Wait(d time.Duration) {
	p.Waits = append(p.Waits, d)
	p.record("wait %s", d)
}

// WaitForURL implements browser.Page.
func (p *Page) WaitForURL(pattern *regexp.Regexp, timeout time.Duration) error {
	if !pattern.MatchString(p.CurrentURL) {
		return fmt.Errorf("%w: url %q does not match %s", browser.ErrTimeout, p.CurrentURL, pattern)
	}
	return nil
}

// Press implements browser.Page.
func (p *Page) Press(key string) error {
	p.record("press %s", key)
	if p.OnPress != nil {
		p.OnPress(key, p.focused)
	}
	return nil
}

type locator struct {
	page *Page
	key  string
}

func (l *locator) scope() scope {
	return scope{page: l.page, key: l.key}
}

func (l *locator) el() *Element {
	return l.page.Elements[l.key]
}

func (l *locator) require() (*Element, error) {
	el := l.el()
	if el == nil || el.Count == 0 {
		return nil, fmt.Errorf("%w: no element matches %q", browser.ErrTimeout, l.key)
	}
	return el, nil
}

func (l *locator) Locator(selector string, opts ...browser.LocatorOptions) browser.Locator {
	return l.scope().Locator(selector, opts...)
}

func (l *locator) FrameLocator(selector string) browser.FrameLocator {
	return l.scope().FrameLocator(selector)
}

func (l *locator) GetByRole(role, name string) browser.Locator {
	return l.scope().GetByRole(role, name)
}

func (l *locator) GetByText(text string) browser.Locator {
	return l.scope().GetByText(text)
}

func (l *locator) First() browser.Locator { return l }

func (l *locator) Last() browser.Locator { return l }

func (l *locator) Nth(index int) browser.Locator { return l }

func (l *locator) Filter(opts browser.LocatorOptions) browser.Locator {
	if opts.HasText == "" {
		return l
	}
	return &locator{page: l.page, key: Has(l.key, opts.HasText)}
}

func (l *locator) Click(opts ...browser.ClickOptions) error {
	el, err := l.require()
	if err != nil {
		return err
	}
	l.page.record("click %s", l.key)
	if el.OnClick != nil {
		el.OnClick()
	}
	return nil
}

func (l *locator) Fill(value string) error {
	el, err := l.require()
	if err != nil {
		return err
	}
	el.Value = value
	l.page.record("fill %s=%s", l.key, value)
	if el.OnFill != nil {
		el.OnFill(value)
	}
	return nil
}

func (l *locator) PressSequentially(text string, delay time.Duration) error {
	el, err := l.require()
	if err != nil {
		return err
	}
	el.Value += text
	l.page.record("type %s=%s", l.key, text)
	return nil
}

func (l *locator) Focus() error {
	if _, err := l.require(); err != nil {
		return err
	}
	l.page.focused = l.key
	l.page.record("focus %s", l.key)
	return nil
}

func (l *locator) Blur() error {
	if _, err := l.require(); err != nil {
		return err
	}
	if l.page.focused == l.key {
		l.page.focused = ""
	}
	l.page.record("blur %s", l.key)
	return nil
}

func (l *locator) SelectOption(values browser.SelectOptionValues) error {
	el, err := l.require()
	if err != nil {
		return err
	}
	switch {
	case values.Index != nil:
		el.Value = fmt.Sprintf("#%d", *values.Index)
	case values.Label != "":
		el.Value = values.Label
	default:
		el.Value = values.Value
	}
	l.page.record("select %s=%s", l.key, el.Value)
	return nil
}

func (l *locator) Count() (int, error) {
	if el := l.el(); el != nil {
		return el.Count, nil
	}
	return 0, nil
}

func (l *locator) InputValue() (string, error) {
	el, err := l.require()
	if err != nil {
		return "", err
	}
	return el.Value, nil
}

func (l *locator) IsChecked() (bool, error) {
	el, err := l.require()
	if err != nil {
		return false, err
	}
	return el.Checked, nil
}

func (l *locator) WaitFor(opts browser.WaitForOptions) error {
	el := l.el()
	state := opts.State
	if state == "" {
		state = browser.StateVisible
	}
	l.page.record("wait-for %s %s", l.key, state)
	var ok bool
	switch state {
	case browser.StateAttached:
		ok = el != nil && el.Count > 0
	case browser.StateDetached:
		ok = el == nil || el.Count == 0
	case browser.StateHidden:
		ok = !el.visible()
	default:
		ok = el.visible()
	}
	if !ok {
		return fmt.Errorf("%w: %q never became %s", browser.ErrTimeout, l.key, state)
	}
	return nil
}

func (l *locator) ExpectVisible(visible bool, timeout time.Duration) error {
	if l.el().visible() != visible {
		return fmt.Errorf("%w: %q visible=%t", browser.ErrExpectation, l.key, !visible)
	}
	return nil
}

func (l *locator) ExpectCount(count int, timeout time.Duration) error {
	n, _ := l.Count()
	if n != count {
		return fmt.Errorf("%w: %q has count %d, want %d", browser.ErrExpectation, l.key, n, count)
	}
	return nil
}

func (l *locator) ExpectValue(value string, timeout time.Duration) error {
	el := l.el()
	if el == nil || el.Count == 0 {
		return fmt.Errorf("%w: no element matches %q", browser.ErrExpectation, l.key)
	}
	if el.Value != value {
		return fmt.Errorf("%w: %q has value %q, want %q", browser.ErrExpectation, l.key, el.Value, value)
	}
	return nil
}

func (l *locator) ExpectChecked(checked bool, timeout time.Duration) error {
	el := l.el()
	if el == nil || el.Count == 0 {
		return fmt.Errorf("%w: no element matches %q", browser.ErrExpectation, l.key)
	}
	if el.Checked != checked {
		return fmt.Errorf("%w: %q checked=%t, want %t", browser.ErrExpectation, l.key, el.Checked, checked)
	}
	return nil
}
