package faq

import (
	"fmt"
	"sync"
)

type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var Entries = []Entry{
	{
		Question: "What is Krishi AI and how does it help farmers?",
		Answer:   "Krishi AI is an AI-powered platform that assists farmers with soil analysis, crop disease detection, weather forecasting, and access to a farming community. It helps improve productivity and make informed decisions.",
	},
	{
		Question: "Is Krishi AI free to use, or does it require a subscription?",
		Answer:   "Krishi AI offers core features for free. Some premium features may require a subscription, but basic tools like disease detection and weather updates are available to all users.",
	},
	{
		Question: "How does the soil analysis feature work?",
		Answer:   "You can upload images of your soil or input details manually. Krishi AI analyzes the data using AI models to assess fertility and nutrient levels.",
	},
	{
		Question: "How does Krishi AI detect crop diseases?",
		Answer:   "By uploading a clear photo of the affected crop, Krishi AI uses machine learning to identify diseases and suggest possible treatments.",
	},
}

// Accordion keeps at most one entry open. Open() is -1 when all are closed.
type Accordion struct {
	mu   sync.Mutex
	open int
}

func NewAccordion() *Accordion { return &Accordion{open: -1} }

// Toggle opens entry i, or closes it when it is already the open one.
func (a *Accordion) Toggle(i int) error {
	if i < 0 || i >= len(Entries) {
		return fmt.Errorf("faq index %d out of range [0,%d)", i, len(Entries))
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.open == i {
		a.open = -1
	} else {
		a.open = i
	}
	return nil
}

func (a *Accordion) Open() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open
}

// Item is an entry as rendered, with its open flag.
type Item struct {
	Index int `json:"index"`
	Entry
	Open bool `json:"open"`
}

func (a *Accordion) Items() []Item {
	open := a.Open()
	out := make([]Item, len(Entries))
	for i, e := range Entries {
		out[i] = Item{Index: i, Entry: e, Open: i == open}
	}
	return out
}
