package models

// ChatMessage is the body published to and relayed from the chat channel.
// Messages appear in the log only when the server relays them back; there is
// no local echo.
type ChatMessage struct {
	ChatRoomID        int64  `json:"chatRoomId"`
	SenderUsername    string `json:"senderUsername"`
	RecipientUsername string `json:"recipientUsername"`
	Content           string `json:"content"`
}

// ChatRoom is a direct-message conversation with one recipient.
type ChatRoom struct {
	ID        int64  `json:"id"`
	Recipient string `json:"recipientUsername"`
}

const MaxChatMessageLength = 5000
