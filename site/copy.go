package site

import "github.com/syncronet/athletos-web/templatex"

const (
	servicesRoute = "/tjenester"
	servicesTitle = "Tjenester"
	servicesDesc  = "Oplev hele spektret af AthletoS' avancerede løsninger designet til at give dig en uovertruffen fordel og maksimere dit potentiale."
	postsRoute    = "/blog"
	postsTitle    = "Nyheder"
	postsDesc     = "Nyheder og indlæg fra SYNCRONET ApS om Athletos og sportsdata."
	postsEmpty    = "<p>Der er ingen indlæg endnu. Kig forbi igen snart.</p>"
	frontTitle    = "Forside"
	notFoundTitle = "Siden blev ikke fundet"
	contactRoute  = "/kontakt"
)

var mainMenu = []templatex.MenuItem{
	{Title: "Om os", URL: "/om-os"},
	{Title: "Ydelser", URL: "/ydelser"},
	{Title: "Kontakt", URL: contactRoute},
}

var heroStats = []templatex.Stat{
	{Value: "99.99%", Label: "Oppetid"},
	{Value: "0.2s", Label: "Median latens"},
	{Value: "Skalerbar", Label: "Til vækst"},
}

var homeFeatures = []templatex.Card{
	{Title: "Hvorfor Athletos?", Text: "Vi leverer pålidelig real-time synkronisering, nem integration og værktøjer til at skalere uden at ofre latenstid."},
	{Title: "Starter-pakken", Text: "En hurtig indgang til produktionsklar synkronisering med overvågning, SLA og support til sport- og event-data."},
	{Title: "Sikkerhed & drift", Text: "Kryptering, rollebaseret adgang og døgnovervågning sikrer kontinuerlig drift og dataintegritet."},
}

var homeServices = []templatex.Service{
	{Title: "Real-time API", Text: "Lav-latency endpoints, webhook support og batch-synk."},
	{Title: "Monitoring", Text: "Dashboards, alerts og SLA-rapporter for driftsteams."},
	{Title: "Support & onboarding", Text: "Guidet integration og teknisk onboarding. Vi hjælper med at komme hurtigt i gang."},
}

var platformServices = []templatex.Service{
	{
		ID:    "ai-analyse",
		Tag:   "AI & Maskinlæring",
		Title: "AI-drevet Præstationsanalyse",
		Text:  "Vores avancerede AI analyserer dine biometriske data, herunder puls, kadence, VO2 max, søvn og restitution, for at give hyper-personlige og handlingsvenlige anbefalinger. Jo mere du bruger AthletoS, jo klogere bliver systemet om dig.",
		Bullets: []string{
			"Realtidsanalyse af +40 biometriske parametre",
			"VO2 max estimering og tracking",
			"Søvn- og restitutionsvurdering",
			"Overtraining-detektion og advarsler",
		},
		CTA: "Læs mere om Præstationsanalyse",
	},
	{
		ID:    "traening",
		Tag:   "Personalisering",
		Title: "Adaptive & Personlige Træningsplaner",
		Text:  "Træningsplaner, der kontinuerligt tilpasses i realtid baseret på dine fremskridt, dagsform og specifikke mål. Integrerer med eksterne træningsplatforme og dine foretrukne wearables for et komplet billede af din præstation.",
		Bullets: []string{
			"Dynamisk planjustering baseret på din form",
			"Integration med Garmin, Apple Watch, Polar",
			"Periodisering og peak-performance timing",
			"Ernærings- og hydrationsanbefalinger",
		},
		CTA: "Udforsk Personlige Planer",
	},
	{
		ID:    "realtime",
		Tag:   "Data & Sensorer",
		Title: "Realtidsdata & Udstyrs-Tracking",
		Text:  "Problemfri integration med dine sensorer og wearables giver live feedback under træning. AthletoS sporer desuden dine udstyrspecifikke data, fra slid på løbesko til cykelkomponenters ydeevne og vedligehold.",
		Bullets: []string{
			"Live datafeed fra 200+ sensorer og wearables",
			"Udstyrssporing og vedligeholdelsespåmindelser",
			"GPS rute-analyse og miljøkorrigering",
			"Post-træning gennemgang og rapporter",
		},
		CTA: "Se Datafunktioner",
	},
	{
		ID:    "faellesskab",
		Tag:   "Fællesskab",
		Title: "Fællesskab & Professionelt Coach-Samarbejde",
		Text:  "Engagér dig med et globalt fællesskab af dedikerede atleter. Trænere kan nemt overvåge, analysere og vejlede alle deres atleter i realtid via en dedikeret coach-portal med avancerede analyseredskaber.",
		Bullets: []string{
			"Globale udfordringer og ranglister",
			"Dedikeret coach-dashboard med live data",
			"Team-koordination og planlægning",
			"Privat messaging og videoanalyse",
		},
		CTA: "Læs om Fællesskabsfunktioner",
	},
}

var supportItems = []templatex.Card{
	{Icon: "⚡", Title: "24/7 Premium Support", Text: "Altid adgang til ekspert-support, uanset tidspunkt."},
	{Icon: "📚", Title: "Eksklusiv Vidensbase", Text: "Dybtgående artikler, guider og videoer fra topatleter."},
	{Icon: "🎓", Title: "Personlige Webinars", Text: "Live sessions med sportsforskere og elitecoaches."},
	{Icon: "👤", Title: "Dedikeret Account Manager", Text: "En personlig kontaktperson til hold og organisationer."},
}
