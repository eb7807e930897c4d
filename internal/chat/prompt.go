package chat

import (
	"fmt"
	"strings"

	"github.com/supportdesk/aisha/models"
	"github.com/supportdesk/aisha/session"
)

// NoContextSentinel is handed to the completion service as real context when
// retrieval finds nothing, not suppressed.
const NoContextSentinel = "No relevant context found."

const systemPromptTemplate = `You are AISHA, a calm and helpful customer support agent. Answer the queries in %s.
Greet users & introduce yourself only in the first message of the session and ask for phone number.
Respond to user queries directly, without greetings or unnecessary repetition or white spaces.
DON'T REPEAT THE THINGS YOU HAVE SAID BEFORE.
If the user expresses gratitude or says goodbye, acknowledge it politely.
If the user's name or phone number is missing, ask for it.
For technical issues, provide basic troubleshooting steps.
For complaints, try to resolve the complaint, if you are not able to resolve the issue, or customer is not satisfied,
create a ticket for the customer. REMEMBER: While creating a ticket, always give a ticket number to the customer.
When you are giving a ticket number add this kind of line to your response describing the issue. Issue: write the issue here.
The ticket number should be unique and comprise of 2 random uppercase letters followed by 4 random digits.
Avoid answering unrelated questions and guide users to stay on topic.
Do not offer discounts or promotions.
Keep it short, if the query is solved, ask if they have any more queries.
If user says thank you or goodbye or issue resolved, just end the conversation.
If no further queries, end with: "Thank you for contacting us. Have a great day!"`

// BuildMessages assembles the augmented prompt: system instructions, the
// retrieved context block, the full history and the new user turn, in order.
func BuildMessages(language, contextBlock string, history []models.Turn, input string) []models.Message {
	msgs := make([]models.Message, 0, len(history)+3)
	msgs = append(msgs,
		models.Message{Role: string(models.RoleSystem), Content: fmt.Sprintf(systemPromptTemplate, language)},
		models.Message{Role: string(models.RoleSystem), Content: "This is the context of user from Database: " + contextBlock},
	)
	for _, t := range history {
		msgs = append(msgs, models.Message{Role: string(t.Role), Content: t.Text})
	}
	return append(msgs, models.Message{Role: string(models.RoleUser), Content: input})
}

// ContextBlock renders retrieved entries one per line, or the sentinel when
// the search came back empty.
func ContextBlock(hits []session.Entry) string {
	if len(hits) == 0 {
		return NoContextSentinel
	}
	texts := make([]string, 0, len(hits))
	for _, h := range hits {
		texts = append(texts, h.Text)
	}
	return strings.Join(texts, "\n")
}
