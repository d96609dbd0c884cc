/* mock_session.go
 * Contains a mock implementation of DiscordSession for tests
 */

package bot

import "github.com/bwmarrin/discordgo"

// MockDiscordSession records the messages the handlers send
type MockDiscordSession struct {
	SentMessages []MockMessage
}

// MockMessage is one message sent to a channel
type MockMessage struct {
	ChannelID string
	Content   string
}

// ChannelMessageSend implements DiscordSession.ChannelMessageSend
func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.SentMessages = append(m.SentMessages, MockMessage{ChannelID: channelID, Content: content})
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

// LastMessage returns the most recent message, or an empty MockMessage
func (m *MockDiscordSession) LastMessage() MockMessage {
	if len(m.SentMessages) == 0 {
		return MockMessage{}
	}
	return m.SentMessages[len(m.SentMessages)-1]
}
