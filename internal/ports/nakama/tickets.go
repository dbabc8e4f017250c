package nakama

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"

	"uno/internal/turn"
)

const ticketIssuer = "uno"

var (
	ErrTicketMissing  = errors.New("decision ticket is required")
	ErrTicketMismatch = errors.New("decision ticket does not match the pending decision")
)

// TicketService signs the decision prompts sent to the human player. A
// decision is only accepted with the ticket of the prompt it answers.
type TicketService struct {
	secret []byte
	now    func() time.Time
}

func NewTicketService(secret string) *TicketService {
	return &TicketService{secret: []byte(secret), now: time.Now}
}

// Issue returns a ticket for userID answering flag in sequence seqID. It
// expires with the decision.
func (s *TicketService) Issue(userID, seqID string, flag turn.Flag, ttl time.Duration) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", fmt.Errorf("ticket service is not configured")
	}
	if userID == "" {
		return "", fmt.Errorf("user is required")
	}
	claims := jwt.MapClaims{
		"iss": ticketIssuer,
		"sub": userID,
		"exp": s.now().Add(ttl).Unix(),
		"seq": seqID,
		"flg": string(flag),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks that ticket was issued to userID for the given decision.
func (s *TicketService) Verify(ticket, userID, seqID string, flag turn.Flag) error {
	if ticket == "" {
		return ErrTicketMissing
	}
	token, err := jwt.Parse(ticket, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid decision ticket: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return fmt.Errorf("invalid decision ticket")
	}
	if claims["iss"] != ticketIssuer || claims["sub"] != userID || claims["seq"] != seqID || claims["flg"] != string(flag) {
		return ErrTicketMismatch
	}
	return nil
}
