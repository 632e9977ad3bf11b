package model

// Message roles in the conversation transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the conversation transcript. The transcript lives
// only in memory and is append-only within a session.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Activity is a ready-made suggestion the user can send as a chat opener.
type Activity struct {
	Title string
	Desc  string
}

// Activities returns the fixed suggestion list shown on the home view.
func Activities() []Activity {
	return []Activity{
		{Title: "Caminhada leve", Desc: "15 minutos ao ar livre"},
		{Title: "Café com amigos", Desc: "Socializar faz bem"},
		{Title: "Ler um livro", Desc: "Estimula a mente"},
		{Title: "Ouvir música", Desc: "Relaxante e alegre"},
	}
}
