package intent

const apexPredatorID = "apex-predator"

const (
	replyAllTours  = "🦕 Show all tours"
	replyThrilling = "🔥 Most thrilling tour?"
	replyFamily    = "👨‍👩‍👧 Family-friendly tours?"
	replyCheapest  = "💰 Cheapest tour?"
	replyDangerous = "☠️ Most dangerous tour?"
	replyAquatic   = "🌊 Aquatic tours?"
)

// QuickReplies are the canned suggestion chips. A fresh conversation offers the first four.
var QuickReplies = []string{
	replyAllTours,
	replyThrilling,
	replyFamily,
	replyCheapest,
	replyDangerous,
	replyAquatic,
}

// Greetings is the pool the opening line of a conversation is drawn from.
var Greetings = []string{
	"Welcome to InGen Guest Relations Terminal v4.2. How may I assist you today?",
	"InGen Corp. — Your safety is our priority*. (*Terms and conditions apply.) How can I help?",
	"System online. All containment sectors nominal. What would you like to know?",
}

var fallbacks = []string{
	"Signal unclear. Could you rephrase your query? Try asking about tours, dinosaurs, or pricing.",
	"InGen database returned no matches. Try asking about specific dinosaurs or tour packages.",
	"Command not recognized. Type 'help' for available options, or ask me about any tour or dinosaur species.",
}
