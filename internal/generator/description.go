package generator

import (
	"strings"
	"time"
	"unicode"

	"github.com/willfong/finfixture/internal/data"
	"github.com/willfong/finfixture/internal/models"
	"github.com/willfong/finfixture/internal/utils"
)

// descriptionContext carries the values substituted into statement
// descriptor templates
type descriptionContext struct {
	company string
	city    string
	region  string
	client  string
	service string
}

func newDescriptionContext(profile models.CompanyProfile) descriptionContext {
	city, region := splitLocation(profile.Location)
	return descriptionContext{
		company: profile.CompanyName,
		city:    city,
		region:  region,
	}
}

func (c descriptionContext) with(client, service string) descriptionContext {
	c.client = client
	c.service = service
	return c
}

// locationCode renders "San Francisco, CA" as "SAN FRANCISCO CA"
func (c descriptionContext) locationCode() string {
	return strings.ToUpper(strings.TrimSpace(c.city + " " + c.region))
}

// splitLocation splits "City, ST" into its parts
func splitLocation(location string) (string, string) {
	city, region, found := strings.Cut(location, ",")
	if !found {
		return strings.TrimSpace(location), ""
	}
	return strings.TrimSpace(city), strings.TrimSpace(region)
}

// formatDescription renders the statement descriptor for a merchant: the
// brand template when one exists, otherwise an abbreviated generic code.
func formatDescription(rng utils.Source, merchant string, date time.Time, ctx descriptionContext) string {
	if tmpl, ok := data.DescriptionTemplateFor(merchant); ok {
		return fillTemplate(rng, tmpl, date, ctx)
	}
	return genericDescription(rng, merchant, date, ctx)
}

func fillTemplate(rng utils.Source, tmpl string, date time.Time, ctx descriptionContext) string {
	r := strings.NewReplacer(
		"{date}", date.Format("01/02"),
		"{random}", rng.NumericString(rng.IntRange(6, 10)),
		"{location}", ctx.locationCode(),
		"{client}", strings.ToUpper(ctx.client),
		"{service}", strings.ToUpper(ctx.service),
	)
	return strings.Join(strings.Fields(r.Replace(tmpl)), " ")
}

// genericDescription abbreviates each word of the merchant name to one or
// two letters and appends optional location, reference and date suffixes.
func genericDescription(rng utils.Source, merchant string, date time.Time, ctx descriptionContext) string {
	var code strings.Builder
	for _, word := range strings.Fields(merchant) {
		letters := make([]rune, 0, 2)
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				letters = append(letters, unicode.ToUpper(r))
			}
			if len(letters) == 2 {
				break
			}
		}
		if len(letters) == 0 {
			continue
		}
		n := rng.IntRange(1, len(letters))
		code.WriteString(string(letters[:n]))
	}

	parts := []string{code.String()}
	if parts[0] == "" {
		parts[0] = "POS"
	}
	if loc := ctx.locationCode(); loc != "" && rng.Probability(0.5) {
		parts = append(parts, loc)
	}
	if rng.Probability(0.5) {
		parts = append(parts, "#"+rng.NumericString(rng.IntRange(4, 6)))
	}
	if rng.Probability(0.3) {
		parts = append(parts, date.Format("01/02"))
	}
	return strings.Join(parts, " ")
}
