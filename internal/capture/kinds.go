package capture

import (
	"strings"

	"github.com/georgeji/change-bridge/internal/config"
	"github.com/georgeji/change-bridge/internal/models"
)

// RuleType how write results of a kind become ledger records
type RuleType int

const (
	// RuleSimple one record per written or deleted entity
	RuleSimple RuleType = iota
	// RuleParentCascade the change is recorded as an update of the owning parent
	RuleParentCascade
	// RuleMediaAssociation parent cascade plus a record for the referenced media item
	RuleMediaAssociation
)

// Rule capture rule of one entity kind
type Rule struct {
	Type RuleType

	// parent cascade settings, unused for RuleSimple
	ParentType  string
	ParentField string
	LookupTable string
}

// Kind one capturable entity kind
type Kind struct {
	EntityType  string
	EventPrefix string
	FlagKey     string
	Rule        Rule
}

const (
	suffixWritten = ".written"
	suffixDeleted = ".deleted"

	fieldProductID = "productId"
	fieldMediaID   = "mediaId"
)

func productCascade(table string) Rule {
	return Rule{
		Type:        RuleParentCascade,
		ParentType:  models.EntityProduct,
		ParentField: fieldProductID,
		LookupTable: table,
	}
}

func simple(entityType, flag string) Kind {
	return Kind{EntityType: entityType, EventPrefix: entityType, FlagKey: flag, Rule: Rule{Type: RuleSimple}}
}

// Kinds every entity kind the bridge captures
var Kinds = []Kind{
	simple(models.EntityProduct, config.FlagProductEvents),
	{
		EntityType:  models.EntityProductPrice,
		EventPrefix: models.EntityProductPrice,
		FlagKey:     config.FlagProductEvents,
		Rule:        productCascade(models.EntityProductPrice),
	},
	{
		EntityType:  models.EntityProductCategory,
		EventPrefix: models.EntityProductCategory,
		FlagKey:     config.FlagProductEvents,
		Rule:        productCascade(models.EntityProductCategory),
	},
	{
		EntityType:  models.EntityProductMedia,
		EventPrefix: models.EntityProductMedia,
		FlagKey:     config.FlagProductEvents,
		Rule: Rule{
			Type:        RuleMediaAssociation,
			ParentType:  models.EntityProduct,
			ParentField: fieldProductID,
			LookupTable: models.EntityProductMedia,
		},
	},
	simple(models.EntityCategory, config.FlagCategoryEvents),
	simple(models.EntityCurrency, config.FlagCurrencyEvents),
	simple(models.EntityTax, config.FlagTaxEvents),
	simple(models.EntityUnit, config.FlagUnitEvents),
	simple(models.EntityRule, config.FlagRuleEvents),
	simple(models.EntitySalesChannel, config.FlagSalesChannelEvents),
	simple(models.EntityDeliveryTime, config.FlagDeliveryTimeEvents),
	simple(models.EntityTag, config.FlagTagEvents),
	simple(models.EntityManufacturer, config.FlagManufacturerEvents),
	simple(models.EntityMedia, config.FlagMediaEvents),
	simple(models.EntityPropertyGroup, config.FlagPropertyGroupEvents),
	simple(models.EntityPropertyGroupOption, config.FlagPropertyGroupEvents),
}

var kindsByPrefix = func() map[string]Kind {
	m := make(map[string]Kind, len(Kinds))
	for _, k := range Kinds {
		m[k.EventPrefix] = k
	}
	return m
}()

// Lookup finds the kind for a host event name. deleted reports a ".deleted" event.
func Lookup(eventName string) (kind Kind, deleted bool, ok bool) {
	var prefix string
	switch {
	case strings.HasSuffix(eventName, suffixWritten):
		prefix = strings.TrimSuffix(eventName, suffixWritten)
	case strings.HasSuffix(eventName, suffixDeleted):
		prefix = strings.TrimSuffix(eventName, suffixDeleted)
		deleted = true
	default:
		return Kind{}, false, false
	}

	kind, ok = kindsByPrefix[prefix]
	if !ok {
		return Kind{}, false, false
	}
	return kind, deleted, true
}
