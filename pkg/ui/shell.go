// Package ui is the desktop shell: a window with navigation chrome
// around a strip of browsing tabs.
package ui

import (
	"context"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/copaaglo/mybrowser/pkg/browser"
	"github.com/copaaglo/mybrowser/pkg/net"
	"github.com/copaaglo/mybrowser/pkg/render"
)

const (
	defaultPageWidth = 1024.0
	windowTitle      = "mybrowser"
	homeURL          = "https://example.com"
	newTabTitle      = "New Tab"
)

// shellTab bundles one browsing context with its page display. Each tab
// keeps its own renderer and scroll position.
type shellTab struct {
	tab      *browser.Tab
	renderer *render.Renderer
	view     *pageView
	scroll   *container.Scroll
	item     *container.TabItem
}

// Shell is a multi-tab browser window: a tab strip of browsing
// contexts under shared navigation chrome, with a status bar showing
// the active tab's URL.
type Shell struct {
	app    fyne.App
	window fyne.Window

	tabs   *container.DocTabs
	byItem map[*container.TabItem]*shellTab
	home   string

	urlEntry   *widget.Entry
	backBtn    *widget.Button
	forwardBtn *widget.Button
	reloadBtn  *widget.Button
	homeBtn    *widget.Button
	status     *widget.Label
}

func NewShell() *Shell {
	return newShell(app.New())
}

func newShell(a fyne.App) *Shell {
	w := a.NewWindow(windowTitle)
	w.Resize(fyne.NewSize(defaultPageWidth, 768))

	s := &Shell{
		app:    a,
		window: w,
		byItem: make(map[*container.TabItem]*shellTab),
		home:   homeURL,
	}
	s.buildChrome()
	s.bindShortcuts()
	return s
}

func (s *Shell) buildChrome() {
	s.backBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), s.goBack)
	s.forwardBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), s.goForward)
	s.reloadBtn = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), s.reload)
	s.homeBtn = widget.NewButtonWithIcon("", theme.HomeIcon(), s.goHome)

	s.urlEntry = widget.NewEntry()
	s.urlEntry.SetPlaceHolder("Enter URL...")
	s.urlEntry.OnSubmitted = func(target string) { s.Navigate(target) }

	s.status = widget.NewLabel("")

	s.tabs = container.NewDocTabs()
	s.tabs.CreateTab = func() *container.TabItem {
		return s.makeTab(s.home).item
	}
	s.tabs.CloseIntercept = func(item *container.TabItem) { s.closeTab(item) }
	s.tabs.OnSelected = func(*container.TabItem) { s.refreshChrome() }

	navBar := container.NewBorder(nil, nil,
		container.NewHBox(s.backBtn, s.forwardBtn, s.reloadBtn, s.homeBtn),
		widget.NewButton("Go", func() { s.Navigate(s.urlEntry.Text) }),
		s.urlEntry)
	s.window.SetContent(container.NewBorder(navBar, s.status, nil, nil, s.tabs))
	s.refreshChrome()
}

func (s *Shell) bindShortcuts() {
	cv := s.window.Canvas()
	cv.AddShortcut(&desktop.CustomShortcut{
		KeyName: fyne.KeyL, Modifier: fyne.KeyModifierControl,
	}, func(fyne.Shortcut) { cv.Focus(s.urlEntry) })
	cv.AddShortcut(&desktop.CustomShortcut{
		KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl,
	}, func(fyne.Shortcut) { s.reload() })
	cv.AddShortcut(&desktop.CustomShortcut{
		KeyName: fyne.KeyT, Modifier: fyne.KeyModifierControl,
	}, func(fyne.Shortcut) { s.addTab(s.home) })
	cv.AddShortcut(&desktop.CustomShortcut{
		KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl,
	}, func(fyne.Shortcut) { s.closeTab(s.tabs.Selected()) })
	cv.AddShortcut(&desktop.CustomShortcut{
		KeyName: fyne.KeyLeft, Modifier: fyne.KeyModifierAlt,
	}, func(fyne.Shortcut) { s.goBack() })
	cv.AddShortcut(&desktop.CustomShortcut{
		KeyName: fyne.KeyRight, Modifier: fyne.KeyModifierAlt,
	}, func(fyne.Shortcut) { s.goForward() })
}

// Run opens the window with one tab and blocks until it closes. An
// empty startURL opens the home page.
func (s *Shell) Run(startURL string) {
	if startURL == "" {
		startURL = s.home
	}
	s.addTab(startURL)
	s.window.ShowAndRun()
}

// makeTab builds a tab without attaching it to the strip. The tab strip
// attaches it itself when its own new-tab button created it.
func (s *Shell) makeTab(target string) *shellTab {
	st := &shellTab{tab: browser.NewTab(defaultPageWidth, 768)}
	st.renderer = render.NewRenderer(st.tab.ResolveImage)
	st.view = newPageView(func(x, y float64) { s.pageTapped(st, x, y) })
	st.scroll = container.NewScroll(st.view)
	st.item = container.NewTabItem(newTabTitle, st.scroll)
	s.byItem[st.item] = st
	if target != "" {
		s.navigateTab(st, target)
	}
	return st
}

// addTab opens a new tab, selects it, and loads the target if any.
func (s *Shell) addTab(target string) *shellTab {
	st := s.makeTab(target)
	s.tabs.Append(st.item)
	s.tabs.Select(st.item)
	return st
}

// closeTab removes a tab. Closing the last one opens a fresh home tab
// so the window never shows an empty strip.
func (s *Shell) closeTab(item *container.TabItem) {
	if item == nil {
		return
	}
	delete(s.byItem, item)
	s.tabs.Remove(item)
	if len(s.byItem) == 0 {
		s.addTab(s.home)
		return
	}
	s.refreshChrome()
}

// active returns the tab behind the selected strip item, or nil.
func (s *Shell) active() *shellTab {
	return s.byItem[s.tabs.Selected()]
}

// Navigate loads the target in the active tab, accepting bare
// hostnames and file paths.
func (s *Shell) Navigate(target string) {
	st := s.active()
	if st == nil {
		return
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return
	}
	if !net.IsNetworkURL(target) && !strings.HasPrefix(target, "file://") &&
		!strings.HasPrefix(target, "/") && !strings.HasPrefix(target, ".") {
		target = "http://" + target
	}
	s.navigateTab(st, target)
}

func (s *Shell) navigateTab(st *shellTab, target string) {
	if err := st.tab.Load(context.Background(), target); err != nil {
		s.showError(err)
		return
	}
	s.showPage(st)
}

func (s *Shell) goBack() {
	st := s.active()
	if st == nil {
		return
	}
	if err := st.tab.Back(context.Background()); err != nil {
		s.showError(err)
		return
	}
	s.showPage(st)
}

func (s *Shell) goForward() {
	st := s.active()
	if st == nil {
		return
	}
	if err := st.tab.Forward(context.Background()); err != nil {
		s.showError(err)
		return
	}
	s.showPage(st)
}

func (s *Shell) reload() {
	st := s.active()
	if st == nil {
		return
	}
	if err := st.tab.Reload(context.Background()); err != nil {
		s.showError(err)
		return
	}
	s.showPage(st)
}

func (s *Shell) goHome() {
	s.Navigate(s.home)
}

// pageTapped maps a tap on a tab's page image to a document coordinate
// and follows any link there. The scroll container owns scrolling, so
// image coordinates are already page coordinates.
func (s *Shell) pageTapped(st *shellTab, x, y float64) {
	navigated, err := st.tab.Click(context.Background(), x, y)
	if err != nil {
		s.showError(err)
		return
	}
	if navigated {
		s.showPage(st)
	}
}

// showPage rasterizes the tab's current page at full height, installs
// it, and renames the strip item after the page.
func (s *Shell) showPage(st *shellTab) {
	page := st.tab.Page()
	if page == nil {
		return
	}
	height := int(page.Height)
	if height < 1 {
		height = 1
	}
	img := st.renderer.Render(page.DisplayList, int(st.tab.ViewportWidth), height, 0)
	st.view.SetImage(img)
	st.scroll.ScrollToTop()

	if page.Title != "" {
		st.item.Text = page.Title
	} else {
		st.item.Text = page.URL
	}
	s.tabs.Refresh()
	s.refreshChrome()
}

func (s *Shell) showError(err error) {
	s.status.SetText(err.Error())
	dialogLabel := widget.NewLabel(err.Error())
	dialogLabel.Wrapping = fyne.TextWrapWord
	var popup *widget.PopUp
	okBtn := widget.NewButton("OK", func() { popup.Hide() })
	popup = widget.NewModalPopUp(container.NewVBox(
		widget.NewLabel("Page failed to load"),
		dialogLabel,
		okBtn,
	), s.window.Canvas())
	popup.Show()
}

// refreshChrome points the shared chrome at the active tab: history
// buttons, URL entry, window title and the status bar.
func (s *Shell) refreshChrome() {
	st := s.active()
	if st == nil {
		return
	}
	if st.tab.CanBack() {
		s.backBtn.Enable()
	} else {
		s.backBtn.Disable()
	}
	if st.tab.CanForward() {
		s.forwardBtn.Enable()
	} else {
		s.forwardBtn.Disable()
	}

	page := st.tab.Page()
	if page == nil {
		s.urlEntry.SetText("")
		s.status.SetText("")
		s.window.SetTitle(windowTitle)
		return
	}
	s.urlEntry.SetText(page.URL)
	s.status.SetText(page.URL)
	if page.Title != "" {
		s.window.SetTitle(page.Title + " - " + windowTitle)
	} else {
		s.window.SetTitle(windowTitle)
	}
}
