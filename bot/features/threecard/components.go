package threecard

import (
	"fmt"
	"strconv"
	"strings"

	"coinbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// CustomIDPrefix marks component interactions owned by this feature
const CustomIDPrefix = "threecard:"

// CardCustomID encodes an offer and a zero-based slot into a button ID
func CardCustomID(offerID string, slot int) string {
	return fmt.Sprintf("%s%s:%d", CustomIDPrefix, offerID, slot)
}

// ParseCardCustomID is the inverse of CardCustomID
func ParseCardCustomID(customID string) (offerID string, slot int, err error) {
	rest, ok := strings.CutPrefix(customID, CustomIDPrefix)
	if !ok {
		return "", 0, fmt.Errorf("not a three-card button: %q", customID)
	}

	offerID, slotStr, ok := strings.Cut(rest, ":")
	if !ok || offerID == "" {
		return "", 0, fmt.Errorf("malformed three-card button: %q", customID)
	}

	slot, err = strconv.Atoi(slotStr)
	if err != nil {
		return "", 0, fmt.Errorf("%w: slot %q", entities.ErrInvalidChoice, slotStr)
	}
	return offerID, slot, nil
}

// CreateCardButtons builds one button per slot
func CreateCardButtons(offerID string) []discordgo.MessageComponent {
	buttons := make([]discordgo.MessageComponent, 0, entities.ThreeCardSlots)
	for slot := 0; slot < entities.ThreeCardSlots; slot++ {
		buttons = append(buttons, discordgo.Button{
			Label:    fmt.Sprintf("Card %d", slot+1),
			Emoji:    &discordgo.ComponentEmoji{Name: "🃏"},
			Style:    discordgo.PrimaryButton,
			CustomID: CardCustomID(offerID, slot),
		})
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}
