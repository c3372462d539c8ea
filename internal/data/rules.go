package data

import (
	"strings"

	"github.com/willfong/finfixture/internal/utils"
)

// Matcher reports whether a merchant name belongs to a rule
type Matcher func(merchant string) bool

// containsAny matches merchant names containing any keyword, ignoring case
func containsAny(keywords ...string) Matcher {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return func(merchant string) bool {
		m := strings.ToLower(merchant)
		for _, k := range lowered {
			if strings.Contains(m, k) {
				return true
			}
		}
		return false
	}
}

// CategoryRule maps matching merchants to a category path, most specific last
type CategoryRule struct {
	Match    Matcher
	Category []string
}

// DefaultCategory is assigned to merchants no rule matches
var DefaultCategory = []string{"Other"}

// categoryRules are evaluated in order; the first match wins. Deposit labels
// come first so "Stripe" or "Shopify Payout" never land in a vendor bucket.
var categoryRules = []CategoryRule{
	{containsAny("Client Payment", "Wire Transfer", "Stripe", "ACH Deposit", "PayPal", "Square Deposit",
		"Invoice Payment", "Payout", "Check Deposit", "Mobile Deposit"), []string{"Transfer", "Deposit"}},
	{containsAny("AWS", "Google Cloud", "Azure", "DigitalOcean", "Heroku", "Cloudflare", "Snowflake",
		"MongoDB", "Vercel"), []string{"Business Services", "Cloud Computing"}},
	{containsAny("Gusto", "ADP", "Paychex"), []string{"Service", "Payroll"}},
	{containsAny("Google Ads", "Meta Ads", "LinkedIn Ads", "Yelp Ads", "Mailchimp", "Semrush", "Hootsuite",
		"Sprout Social", "Zillow Premier", "Realtor.com", "Klaviyo", "Sales Navigator"),
		[]string{"Service", "Advertising and Marketing"}},
	{containsAny("GitHub", "Atlassian", "JetBrains", "Datadog", "Sentry", "Salesforce", "HubSpot", "Twilio",
		"Slack", "Zoom", "Dropbox", "Adobe", "Microsoft 365", "Google Workspace", "QuickBooks", "Notion",
		"Asana", "Calendly", "Miro", "Figma", "Canva", "DocuSign", "Zendesk", "Epic Systems", "athenahealth",
		"Cerner", "Clio", "AppFolio", "Buildium", "Yardi", "Procore", "Autodesk", "SAP", "Samsara", "Toast",
		"Shopify", "Lightspeed", "ShipStation", "Yotpo", "Canvas", "Blackboard", "Kahoot", "Turnitin",
		"Intuit", "Carta", "Plaid", "NetDocuments", "Relativity", "Frame.io", "Avid", "Doximity", "Vimeo",
		"OpenTable"), []string{"Service", "Computers", "Software"}},
	{containsAny("Bloomberg", "Refinitiv", "FactSet", "Morningstar", "S&P Global", "Moody's", "Westlaw",
		"LexisNexis", "PACER", "Gartner", "Forrester", "CoStar", "LoopNet", "MLS", "DAT Freight",
		"Getty Images", "Shutterstock", "Epidemic Sound", "Coursera", "Chegg", "Martindale"),
		[]string{"Service", "Business Services", "Research and Data"}},
	{containsAny("Comcast", "Verizon", "AT&T", "T-Mobile"), []string{"Service", "Telecommunication Services"}},
	{containsAny("PG&E", "Con Edison", "Duke Energy", "Airgas"), []string{"Service", "Utilities"}},
	{containsAny("Staples", "Office Depot", "Amazon Business", "Uline", "Costco"), []string{"Shops", "Office Supplies"}},
	{containsAny("Home Depot", "Lowe's", "Sherwin-Williams", "84 Lumber", "Ferguson", "Grainger",
		"McMaster-Carr", "Fastenal", "MSC Industrial"), []string{"Shops", "Hardware Store"}},
	{containsAny("Sunbelt Rentals", "United Rentals", "Caterpillar", "Freightliner", "Penske", "Ryder",
		"Siemens", "Rockwell"), []string{"Service", "Industrial Machinery and Equipment"}},
	{containsAny("McKesson", "Henry Schein", "Cardinal Health", "Medline", "Owens & Minor", "Patterson Dental",
		"Quest Diagnostics", "Stericycle"), []string{"Healthcare", "Medical Supplies and Labs"}},
	{containsAny("Sysco", "US Foods", "Restaurant Depot", "Gordon Food Service", "Alibaba", "Faire"),
		[]string{"Shops", "Food and Beverage Store", "Wholesale"}},
	{containsAny("Starbucks", "DoorDash", "Uber Eats", "Grubhub"), []string{"Food and Drink", "Restaurants"}},
	{containsAny("Uber", "Lyft"), []string{"Travel", "Taxi"}},
	{containsAny("Delta Air", "United Airlines", "American Airlines", "Southwest"), []string{"Travel", "Airlines and Aviation Services"}},
	{containsAny("Marriott", "Hilton", "Hyatt", "Airbnb", "Booking.com", "Expedia"), []string{"Travel", "Lodging"}},
	{containsAny("Shell", "Chevron", "ExxonMobil", "Pilot Flying J", "Love's Travel"), []string{"Travel", "Gas Stations"}},
	{containsAny("FedEx", "UPS", "USPS", "DHL"), []string{"Service", "Shipping and Freight"}},
	{containsAny("WeWork", "Regus", "Iron Mountain"), []string{"Payment", "Rent"}},
	{containsAny("The Hartford", "Hiscox", "State Farm"), []string{"Service", "Insurance"}},
	{containsAny("Ecolab", "Cintas", "Aramark"), []string{"Service", "Cleaning"}},
	{containsAny("Upwork", "Pearson", "McGraw Hill", "Scholastic", "B&H Photo", "Spotify"),
		[]string{"Service", "Business Services"}},
}

// CategoryFor classifies a merchant name. The result is a fresh slice the
// caller may keep.
func CategoryFor(merchant string) []string {
	for _, r := range categoryRules {
		if r.Match(merchant) {
			return append([]string(nil), r.Category...)
		}
	}
	return append([]string(nil), DefaultCategory...)
}

// MerchantType is the pricing bucket of a vendor
type MerchantType string

const (
	MerchantSoftware  MerchantType = "software"
	MerchantCloud     MerchantType = "cloud"
	MerchantOffice    MerchantType = "office"
	MerchantUtilities MerchantType = "utilities"
	MerchantMarketing MerchantType = "marketing"
	MerchantDefault   MerchantType = "default"
)

type merchantTypeRule struct {
	Match Matcher
	Type  MerchantType
}

var merchantTypeRules = []merchantTypeRule{
	{containsAny("AWS", "Google Cloud", "Azure", "DigitalOcean", "Heroku", "Cloudflare", "Snowflake",
		"MongoDB", "Vercel"), MerchantCloud},
	{containsAny("Google Ads", "Meta Ads", "LinkedIn Ads", "Yelp Ads", "Mailchimp", "Semrush", "Hootsuite",
		"Sprout Social", "Zillow Premier", "Realtor.com", "Klaviyo"), MerchantMarketing},
	{containsAny("GitHub", "Atlassian", "JetBrains", "Datadog", "Sentry", "Salesforce", "HubSpot", "Twilio",
		"Slack", "Zoom", "Dropbox", "Adobe", "Microsoft 365", "Google Workspace", "QuickBooks", "Notion",
		"Asana", "Calendly", "Miro", "Figma", "Canva", "DocuSign", "Zendesk", "Clio", "AppFolio", "Procore",
		"Autodesk", "Toast", "Shopify", "Gusto"), MerchantSoftware},
	{containsAny("Comcast", "Verizon", "AT&T", "T-Mobile", "PG&E", "Con Edison", "Duke Energy"), MerchantUtilities},
	{containsAny("Staples", "Office Depot", "Amazon Business", "Uline", "Costco", "WeWork"), MerchantOffice},
}

// MerchantTypeFor returns the pricing bucket for a merchant name
func MerchantTypeFor(merchant string) MerchantType {
	for _, r := range merchantTypeRules {
		if r.Match(merchant) {
			return r.Type
		}
	}
	return MerchantDefault
}

// paymentRanges are tier-0 ranges; larger tiers scale by tierScale
var paymentRanges = map[MerchantType]AmountRange{
	MerchantSoftware:  {Min: utils.Dollars(20), Max: utils.Dollars(500)},
	MerchantCloud:     {Min: utils.Dollars(50), Max: utils.Dollars(2_000)},
	MerchantOffice:    {Min: utils.Dollars(25), Max: utils.Dollars(800)},
	MerchantUtilities: {Min: utils.Dollars(80), Max: utils.Dollars(600)},
	MerchantMarketing: {Min: utils.Dollars(100), Max: utils.Dollars(3_000)},
}

// DefaultPaymentRange applies when neither a vendor nor a bucket range exists
var DefaultPaymentRange = AmountRange{Min: utils.Dollars(15), Max: utils.Dollars(1_500)}

var tierScale = [...]float64{1, 2.5, 6, 15, 40}

// PaymentRange returns the payment range for a bucket at a size tier. The
// bool is false when the bucket has no dedicated range.
func PaymentRange(bucket MerchantType, tier int) (AmountRange, bool) {
	if tier < 0 || tier >= len(tierScale) {
		tier = 0
	}
	r, ok := paymentRanges[bucket]
	if !ok {
		return DefaultPaymentRange.Scale(tierScale[tier]), false
	}
	return r.Scale(tierScale[tier]), true
}

// vendorPriceRanges are list prices for well-known vendors; they do not
// scale with company size
var vendorPriceRanges = map[string]AmountRange{
	"Zoom":              {Min: utils.Dollars(15), Max: utils.Dollars(250)},
	"Slack":             {Min: utils.Dollars(9), Max: utils.Dollars(1_200)},
	"GitHub":            {Min: utils.Dollars(4), Max: utils.Dollars(2_100)},
	"Google Workspace":  {Min: utils.Dollars(7), Max: utils.Dollars(1_800)},
	"Microsoft 365":     {Min: utils.Dollars(6), Max: utils.Dollars(2_200)},
	"Adobe":             {Min: utils.Dollars(55), Max: utils.Dollars(900)},
	"Dropbox":           {Min: utils.Dollars(15), Max: utils.Dollars(600)},
	"QuickBooks Online": {Min: utils.Dollars(30), Max: utils.Dollars(200)},
	"Gusto":             {Min: utils.Dollars(40), Max: utils.Dollars(1_500)},
	"Uber":              {Min: utils.Dollars(12), Max: utils.Dollars(95)},
	"Starbucks":         {Min: utils.Dollars(4), Max: utils.Dollars(60)},
	"FedEx":             {Min: utils.Dollars(15), Max: utils.Dollars(400)},
	"UPS":               {Min: utils.Dollars(15), Max: utils.Dollars(400)},
	"Delta Air Lines":   {Min: utils.Dollars(180), Max: utils.Dollars(1_400)},
	"Marriott":          {Min: utils.Dollars(150), Max: utils.Dollars(900)},
	"WeWork":            {Min: utils.Dollars(450), Max: utils.Dollars(6_000)},
}

// VendorPriceRange returns the list-price range of a known vendor
func VendorPriceRange(merchant string) (AmountRange, bool) {
	r, ok := vendorPriceRanges[merchant]
	return r, ok
}

// DescriptionTemplate is a statement descriptor pattern. Placeholders:
// {date} MM/DD, {random} reference digits, {location} city and state,
// {client} client name, {service} service label.
type DescriptionTemplate struct {
	Match    Matcher
	Template string
}

var descriptionTemplates = []DescriptionTemplate{
	{containsAny("Client Payment"), "ACH CREDIT {client} PAYMENT {random}"},
	{containsAny("Wire Transfer"), "INCOMING WIRE TRF {client} REF {random}"},
	{containsAny("Invoice Payment"), "INVOICE PAYMENT {client} {service}"},
	{containsAny("Stripe"), "STRIPE TRANSFER ST-{random}"},
	{containsAny("PayPal"), "PAYPAL TRANSFER {random}"},
	{containsAny("Square Deposit"), "SQUARE INC DEPOSIT {date}"},
	{containsAny("Shopify Payout"), "SHOPIFY PAYOUT {random}"},
	{containsAny("ACH Deposit"), "ACH DEPOSIT {client} {random}"},
	{containsAny("Check Deposit", "Mobile Deposit"), "DEPOSIT {date} CHECK #{random}"},
	{containsAny("AWS"), "AMAZON WEB SERVICES AWS.AMAZON.COM WA {random}"},
	{containsAny("Google Cloud"), "GOOGLE *CLOUD {random} CC@GOOGLE.COM"},
	{containsAny("Azure"), "MSFT *AZURE {random} MSBILL.INFO WA"},
	{containsAny("Amazon Business"), "AMZN MKTP US*{random} AMZN.COM/BILL WA"},
	{containsAny("GitHub"), "GITHUB, INC. {random} SAN FRANCISCO CA"},
	{containsAny("Slack"), "SLACK T{random} SAN FRANCISCO CA"},
	{containsAny("Zoom"), "ZOOM.US 888-799-9666 CA {date}"},
	{containsAny("Uber Eats"), "UBER *EATS {random} HELP.UBER.COM CA"},
	{containsAny("Uber"), "UBER *TRIP {random} HELP.UBER.COM CA"},
	{containsAny("Starbucks"), "STARBUCKS STORE {random} {location}"},
	{containsAny("Gusto"), "GUSTO PAYROLL {date} {random}"},
	{containsAny("ADP"), "ADP PAYROLL FEES {date}"},
	{containsAny("Comcast"), "COMCAST BUSINESS {date} {location}"},
	{containsAny("PG&E"), "PGANDE WEB ONLINE {date}"},
	{containsAny("Upwork"), "UPWORK -{random} {service}"},
	{containsAny("Delta Air"), "DELTA AIR {random} ATLANTA GA"},
	{containsAny("Shell"), "SHELL OIL {random} {location}"},
}

// DescriptionTemplateFor returns the descriptor template for a merchant.
// The bool is false when no brand template exists.
func DescriptionTemplateFor(merchant string) (string, bool) {
	for _, t := range descriptionTemplates {
		if t.Match(merchant) {
			return t.Template, true
		}
	}
	return "", false
}
