// Package technique holds the self-regulation technique cards shown on the
// home screen and the user's favourites.
package technique

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	DefaultCustomTitle = "Técnica personalizada"
	DefaultCustomTag   = "personalizada"
	customSource       = "archivo local"
	customStep         = "Seguí los pasos preferidos para tu autorregulación."
)

var ErrImageRequired = errors.New("la técnica necesita una imagen")

type Card struct {
	ID     string   `json:"id"`
	Title  string   `json:"titulo"`
	Desc   string   `json:"desc"`
	Image  string   `json:"img"`
	Tags   []string `json:"tags"`
	Steps  []string `json:"steps"`
	Source string   `json:"source"`
}

func (c Card) Custom() bool { return strings.HasPrefix(c.ID, "custom_") }

func builtin() []Card {
	return []Card{
		{
			ID:    "respiracion",
			Title: "Respiración 4-7-8",
			Desc:  "Inhalá 4s, retené 7s, exhalá 8s para reducir ansiedad.",
			Tags:  []string{"respiración", "calma"},
			Steps: []string{
				"Encontrá un lugar cómodo y apoyá la espalda.",
				"Inhalá por la nariz contando 4.",
				"Retené el aire contando 7.",
				"Exhalá suave por la boca contando 8.",
				"Repetí 4 ciclos.",
			},
			Source: "https://undraw.co/illustrations",
		},
		{
			ID:    "presion-profunda",
			Title: "Presión profunda",
			Desc:  "Usá mantas pesadas o un chaleco para aportar contención.",
			Image: "https://images.unsplash.com/photo-1506126613408-eca07ce68773?q=80&w=1200&auto=format&fit=crop",
			Tags:  []string{"sensorial", "propiocepción"},
			Steps: []string{
				"Elegí una manta pesada adecuada (10% del peso aprox).",
				"Cubrí hombros y tronco de forma uniforme.",
				"Mantené 10–15 minutos observando confort.",
				"Retirá si hay incomodidad o calor.",
			},
			Source: "https://storyset.com/",
		},
		{
			ID:    "ruido-blanco",
			Title: "Ruido blanco",
			Desc:  "Auriculares con ruido blanco o sonidos suaves.",
			Image: "https://images.unsplash.com/photo-1518441902110-9f89f7e83cd0?q=80&w=1200&auto=format&fit=crop",
			Tags:  []string{"auditivo", "calma"},
			Steps: []string{
				"Colocá auriculares cómodos.",
				"Elegí ruido blanco/lluvia/olas a volumen bajo.",
				"Probá 5–10 minutos y ajustá si es necesario.",
			},
			Source: "https://www.freepik.com/vectors/illustrations",
		},
		{
			ID:    "rincon-calmo",
			Title: "Rincón calmo",
			Desc:  "Espacio con luz tenue, texturas suaves y pocos estímulos.",
			Image: "https://images.unsplash.com/photo-1493666438817-866a91353ca9?q=80&w=1200&auto=format&fit=crop",
			Tags:  []string{"ambiente", "regulación"},
			Steps: []string{
				"Elegí un rincón lejos de ruidos y paso.",
				"Sumá almohadones y manta suave.",
				"Iluminación cálida y tenue.",
				"Guardá allí juguetes sensoriales favoritos.",
			},
			Source: "https://undraw.co/illustrations",
		},
		{
			ID:    "juguetes-sensoriales",
			Title: "Juguetes sensoriales",
			Desc:  "Pelotas antiestrés, fidget spinners o masas táctiles.",
			Image: "https://images.unsplash.com/photo-1506629082955-511b1aa562c8?q=80&w=1200&auto=format&fit=crop",
			Tags:  []string{"táctil", "sensorial"},
			Steps: []string{
				"Seleccioná 2–3 juguetes preferidos.",
				"Usalos 3–5 minutos para descargar tensión.",
				"Guardalos en una caja accesible.",
			},
			Source: "https://storyset.com/",
		},
		{
			ID:    "rutinas-visuales",
			Title: "Rutinas visuales",
			Desc:  "Secuencias con pictogramas para anticipar actividades.",
			Image: "https://images.unsplash.com/photo-1497633762265-9d179a990aa6?q=80&w=1200&auto=format&fit=crop",
			Tags:  []string{"visual", "estructura"},
			Steps: []string{
				"Elegí 3–5 actividades del día.",
				"Representalas con pictogramas o dibujos.",
				"Mostrá el orden e id marcando las realizadas.",
			},
			Source: "https://www.freepik.com/vectors/illustrations",
		},
	}
}

// Draft is what the user fills in to add a card of their own. Tags is a
// comma separated list.
type Draft struct {
	Title string
	Desc  string
	Tags  string
	Image string
}

type Catalog struct {
	mu    sync.RWMutex
	cards []Card
	now   func() time.Time
}

func NewCatalog() *Catalog {
	return &Catalog{cards: builtin(), now: time.Now}
}

func (c *Catalog) Cards() []Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Card(nil), c.cards...)
}

func (c *Catalog) Get(id string) (Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, card := range c.cards {
		if card.ID == id {
			return card, true
		}
	}
	return Card{}, false
}

// AddCustom puts a new card in front of the catalogue.
func (c *Catalog) AddCustom(d Draft) (Card, error) {
	if strings.TrimSpace(d.Image) == "" {
		return Card{}, ErrImageRequired
	}

	title := d.Title
	if title == "" {
		title = DefaultCustomTitle
	}

	card := Card{
		Title:  title,
		Desc:   d.Desc,
		Image:  d.Image,
		Tags:   splitTags(d.Tags),
		Steps:  []string{customStep},
		Source: customSource,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	card.ID = fmt.Sprintf("custom_%d", c.now().UnixMilli())
	c.cards = append([]Card{card}, c.cards...)
	return card, nil
}

func splitTags(raw string) []string {
	if raw == "" {
		return []string{DefaultCustomTag}
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
