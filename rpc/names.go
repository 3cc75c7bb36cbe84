package rpc

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// CallName maps a call as application code spells it ("forumWorkingGroup", "updateRewardAmount") to
// the metadata name ("ForumWorkingGroup.update_reward_amount").
func CallName(module, method string) string {
	return fmt.Sprintf("%s.%s", strcase.ToCamel(module), strcase.ToSnake(method))
}

// EventName maps a metadata event name ("Balances.Transfer") to "balances.Transfer".
func EventName(name string) string {
	pallet, method, found := strings.Cut(name, ".")
	if !found {
		return name
	}
	return fmt.Sprintf("%s.%s", strcase.ToLowerCamel(pallet), method)
}
