// Package domain defines the persisted document model for the Miyukometro
// service. The whole application state is a single JSON document: a running
// danger score with its derived classification, a newest-first list of
// comments, and a static profile section. JSON tags keep the wire format
// compatible with the existing data file and frontend (Portuguese keys).
package domain

import "time"

// SchemaVersion is the document schema version written into new documents.
const SchemaVersion = "1.0.0"

// DefaultPointsPerEvaluation is the score delta applied per comment add/remove.
const DefaultPointsPerEvaluation = 10

// DefaultDeletionPassword is used when no password is supplied at bootstrap.
const DefaultDeletionPassword = "bola123"

// EvaluationDislike is the only evaluation type currently produced.
// Likes exist in the totals but are never incremented by any operation.
const EvaluationDislike = "deslike"

// AnonymousAuthor is the display author for anonymous or empty submissions.
const AnonymousAuthor = "Anônimo"

// Document is the root persisted object. It is always loaded and saved as a
// whole; there is no partial read or partial write.
//
// Fields:
//   - Version / UpdatedAt: schema version and last successful persist time.
//   - Settings: mutable counters and the deletion password.
//   - Profile / Relationships: static descriptive content, never mutated.
//   - Evaluations: the comment ledger plus derived totals.
//   - Metadata: creation info, immutable after bootstrap.
type Document struct {
	Version       string        `json:"versao"`
	UpdatedAt     time.Time     `json:"dataUltimaAtualizacao"`
	Settings      Settings      `json:"configuracoes"`
	Profile       Profile       `json:"perfil"`
	Relationships Relationships `json:"relacionamentos"`
	Evaluations   Evaluations   `json:"avaliacoes"`
	Metadata      Metadata      `json:"metadados"`
}

// Settings holds the mutable score state and operational knobs.
type Settings struct {
	CurrentScore        int         `json:"pontuacaoAtual"`
	VisualAlertEnabled  bool        `json:"alertaVisualAtivo"`
	DangerLevel         DangerLevel `json:"nivelPerigo"`
	PointsPerEvaluation int         `json:"pontosPorAvaliacao"`
	DeletionPassword    string      `json:"senhaExclusao"`
}

// DangerLevel mirrors the current score together with its classification.
// Thresholds are persisted configuration only: Classify intentionally uses
// the fixed bands and does not read them back (see danger.go).
type DangerLevel struct {
	Value          int        `json:"valor"`
	Classification string     `json:"classificacao"`
	Thresholds     Thresholds `json:"limites"`
}

// Thresholds are the stored classification band limits.
type Thresholds struct {
	Low      int `json:"baixo"`
	Medium   int `json:"medio"`
	High     int `json:"alto"`
	Critical int `json:"critico"`
}

// Profile is the static descriptive section of the document. The service
// serves it verbatim and never mutates it.
type Profile struct {
	Name            string   `json:"nome"`
	Age             int      `json:"idade"`
	Height          string   `json:"altura"`
	Characteristics []string `json:"caracteristicas"`
	NaturalHabitat  []string `json:"habitatNatural"`
	Zoo             Link     `json:"zoologico"`
	Status          string   `json:"status"`
}

// Link is a labeled URL inside the profile.
type Link struct {
	URL         string `json:"url"`
	Description string `json:"descricao"`
}

// Relationships lists the profile's free-text relationship groups.
type Relationships struct {
	ArchEnemies []string `json:"arquiInimigos"`
	Likes       []string `json:"coisasQueGosta"`
	Nicknames   []string `json:"apelidos"`
}

// Evaluations is the comment ledger with its derived totals. TotalComments
// and TotalDislikes always equal the length of Comments after a mutation;
// TotalLikes is carried for the frontend but never incremented.
type Evaluations struct {
	TotalComments int       `json:"totalComentarios"`
	TotalLikes    int       `json:"totalLikes"`
	TotalDislikes int       `json:"totalDeslikes"`
	Comments      []Comment `json:"comentarios"`
}

// Comment is a single guestbook entry. IDs are millisecond timestamps;
// text and author are sanitized before a Comment is constructed.
type Comment struct {
	ID             int64       `json:"id"`
	Text           string      `json:"texto"`
	Author         string      `json:"autor"`
	Anonymous      bool        `json:"anonimo"`
	EvaluationType string      `json:"tipoAvaliacao"`
	CreatedAtText  string      `json:"dataHora"`
	CreatedAtMs    int64       `json:"timestamp"`
	Attachment     *Attachment `json:"arquivo"`
}

// Attachment is an optional file payload carried inline with a comment.
// Data holds the base64-encoded content exactly as submitted.
type Attachment struct {
	Name string `json:"nome,omitempty"`
	Type string `json:"tipo,omitempty"`
	Data string `json:"dados"`
}

// Metadata records document creation info. Immutable after bootstrap.
type Metadata struct {
	CreatedAt     time.Time `json:"criadoEm"`
	SchemaVersion string    `json:"versaoSchema"`
	Description   string    `json:"descricao"`
	Author        string    `json:"autor"`
}

// DefaultDocument returns a fully-populated document with the bootstrap
// profile content and a zero score. password becomes the deletion password;
// when empty, DefaultDeletionPassword is used. now stamps both the update
// and creation timestamps.
func DefaultDocument(password string, now time.Time) *Document {
	if password == "" {
		password = DefaultDeletionPassword
	}
	return &Document{
		Version:   SchemaVersion,
		UpdatedAt: now,
		Settings: Settings{
			CurrentScore:       0,
			VisualAlertEnabled: true,
			DangerLevel: DangerLevel{
				Value:          0,
				Classification: DangerLow,
				Thresholds:     DefaultThresholds(),
			},
			PointsPerEvaluation: DefaultPointsPerEvaluation,
			DeletionPassword:    password,
		},
		Profile: Profile{
			Name:            "Miyuki",
			Age:             30,
			Height:          "1,78m",
			Characteristics: []string{"Gordo", "Calvo"},
			NaturalHabitat:  []string{"CDL", "Bonfire"},
			Zoo: Link{
				URL:         "https://discord.gg/G5FydZmxt2",
				Description: "Discord Server",
			},
			Status: "Sob Monitoramento Constante",
		},
		Relationships: Relationships{
			ArchEnemies: []string{"Locutor", "Dio", "Dev Titan", "Erick", "Dry", "Mãe dele"},
			Likes:       []string{"Pennelope", "Hotroll", "Pizza", "Coquinha", "Pedir esmola", "Joguinho na Steam"},
			Nicknames:   []string{"Gordo", "Bola", "Mendigo", "Gorduky", "Mijuki", "Balão d'água"},
		},
		Evaluations: Evaluations{
			TotalComments: 0,
			TotalLikes:    0,
			TotalDislikes: 0,
			Comments:      []Comment{},
		},
		Metadata: Metadata{
			CreatedAt:     now,
			SchemaVersion: SchemaVersion,
			Description:   "Arquivo de persistência de dados do Miyukometro",
			Author:        "Sistema Miyukometro",
		},
	}
}

// DefaultThresholds returns the stored classification band limits. The
// critical limit equals the high limit in data files already in the wild;
// the value is preserved verbatim.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: 30, Medium: 60, High: 90, Critical: 90}
}
