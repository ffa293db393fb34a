package locale

// Key identifies a translatable message.
type Key string

type entry struct {
	key Key
	pl  string
	en  string
}

// Recommendation messages.
const (
	RecSlowLoad         Key = "rec.slow_load"
	RecImagesAlt        Key = "rec.images_alt"
	RecInputLabels      Key = "rec.input_labels"
	RecExifGPS          Key = "rec.exif_gps"
	RecHTTPS            Key = "rec.https"
	RecSkipLinks        Key = "rec.skip_links"
	RecTabindex         Key = "rec.tabindex"
	RecCSP              Key = "rec.csp"
	RecSecurityHeaders  Key = "rec.security_headers"
	RecBrokenLinks      Key = "rec.broken_links"
	RecPageSize         Key = "rec.page_size"
	RecImageDimensions  Key = "rec.image_dimensions"
	RecEmptyHeadings    Key = "rec.empty_headings"
	RecNoRecommendation Key = "rec.none"
)

// Report labels.
const (
	ReportTitle        Key = "report.title"
	Score              Key = "report.score"
	Overall            Key = "report.overall"
	Grade              Key = "report.grade"
	Performance        Key = "section.performance"
	Accessibility      Key = "section.accessibility"
	Security           Key = "section.security"
	Usability          Key = "section.usability"
	Recommendations    Key = "section.recommendations"
	Findings           Key = "section.findings"
	ImageMetadata      Key = "section.image_metadata"
	LinkCheck          Key = "section.link_check"
	LoadingTimes       Key = "perf.loading"
	DNSLookup          Key = "perf.dns"
	TotalTime          Key = "perf.total_time"
	ResponseSize       Key = "perf.response_size"
	StatusCode         Key = "perf.status_code"
	Resources          Key = "perf.resources"
	Images             Key = "perf.images"
	WithoutDimensions  Key = "perf.without_dimensions"
	CSSFiles           Key = "perf.css_files"
	JSFiles            Key = "perf.js_files"
	ExternalLinks      Key = "perf.external_links"
	ImageFormats       Key = "perf.image_formats"
	SEO                Key = "perf.seo"
	PageTitle          Key = "perf.page_title"
	MetaDescription    Key = "perf.meta_description"
	Viewport           Key = "perf.viewport"
	Canonical          Key = "perf.canonical"
	HTTPS              Key = "sec.https"
	CertExpires        Key = "sec.cert_expires"
	SecurityHeaders    Key = "sec.headers"
	Rating             Key = "sec.rating"
	MixedContent       Key = "sec.mixed_content"
	XSSVectors         Key = "sec.xss_vectors"
	InsecureForms      Key = "sec.insecure_forms"
	Semantic           Key = "acc.semantic"
	PageLanguage       Key = "acc.page_language"
	TextDirection      Key = "acc.text_direction"
	HeadingIssues      Key = "acc.heading_issues"
	EmptyHeadings      Key = "acc.empty_headings"
	Headings           Key = "acc.headings"
	Pieces             Key = "acc.pieces"
	Landmarks          Key = "acc.landmarks"
	Keyboard           Key = "acc.keyboard"
	Interactive        Key = "acc.interactive"
	SkipLinks          Key = "acc.skip_links"
	TabindexIssues     Key = "acc.tabindex_issues"
	ScreenReader       Key = "acc.screen_reader"
	ImagesTotal        Key = "acc.images_total"
	WithAlt            Key = "acc.with_alt"
	WithoutAlt         Key = "acc.without_alt"
	WithEmptyAlt       Key = "acc.with_empty_alt"
	AriaLabels         Key = "acc.aria_labels"
	Forms              Key = "acc.forms"
	FormFields         Key = "acc.form_fields"
	LabeledFields      Key = "acc.labeled_fields"
	RequiredFields     Key = "acc.required_fields"
	Fieldsets          Key = "acc.fieldsets"
	Legends            Key = "acc.legends"
	ContrastIssues     Key = "acc.contrast_issues"
	WCAG               Key = "acc.wcag"
	Navigation         Key = "use.navigation"
	NavElements        Key = "use.nav_elements"
	Breadcrumbs        Key = "use.breadcrumbs"
	SearchFeature      Key = "use.search"
	InternalLinks      Key = "use.internal_links"
	IndicatedLinks     Key = "use.indicated_links"
	NavigationClarity  Key = "use.navigation_clarity"
	Content            Key = "use.content"
	ContentStructure   Key = "use.content_structure"
	Readability        Key = "use.readability"
	WordsPerSentence   Key = "use.words_per_sentence"
	MobileUsability    Key = "use.mobile"
	PagesChecked       Key = "links.pages_checked"
	BrokenLinks        Key = "links.broken"
	ImagesChecked      Key = "img.checked"
	ImagesWithMetadata Key = "img.with_metadata"
	PriorityCritical   Key = "priority.critical"
	PriorityImportant  Key = "priority.important"
	PriorityMinor      Key = "priority.minor"
	Yes                Key = "yes"
	No                 Key = "no"
	Present            Key = "present"
	Absent             Key = "absent"
	Days               Key = "days"
	ReportSaved        Key = "report.saved"
)

// LaTeX document messages.
const (
	LatexTitle          Key = "latex.title"
	LatexSubtitle       Key = "latex.subtitle"
	LatexAuthor         Key = "latex.author"
	LatexSummary        Key = "latex.summary"
	LatexSummaryIntro   Key = "latex.summary_intro"
	LatexKeyResults     Key = "latex.key_results"
	LatexPerfAnalysis   Key = "latex.perf_analysis"
	LatexLoadMetrics    Key = "latex.load_metrics"
	LatexMetric         Key = "latex.metric"
	LatexValue          Key = "latex.value"
	LatexLoadOver       Key = "latex.load_over"
	LatexLoadOK         Key = "latex.load_ok"
	LatexAssessment     Key = "latex.assessment"
	LatexResourceType   Key = "latex.resource_type"
	LatexCount          Key = "latex.count"
	LatexHeader         Key = "latex.header"
	LatexStatus         Key = "latex.status"
	LatexAccAnalysis    Key = "latex.acc_analysis"
	LatexLevel          Key = "latex.level"
	LatexPoints         Key = "latex.points"
	LatexMaximum        Key = "latex.maximum"
	LatexPercent        Key = "latex.percent"
	LatexCriticalIssues Key = "latex.critical_issues"
	LatexImportant      Key = "latex.important_issues"
	LatexMinor          Key = "latex.minor_issues"
	LatexMethodology    Key = "latex.methodology"
	LatexMethodBody     Key = "latex.method_body"
	LatexLimitations    Key = "latex.limitations"
	LatexLimitBody      Key = "latex.limit_body"
	LatexRenewSoon      Key = "latex.renew_soon"
	LatexCertOK         Key = "latex.cert_ok"
	LatexLabeledPercent Key = "latex.labeled_percent"
	LatexAltPercent     Key = "latex.alt_percent"
	LatexElement        Key = "latex.element"
)

var entries = []entry{
	// Recommendations
	{RecSlowLoad, "Drastycznie zmniejszyć czas ładowania strony (>3s)", "Drastically reduce page load time (>3s)"},
	{RecImagesAlt, "Dodać tekst alternatywny do %d obrazów", "Add alternative text to %d images"},
	{RecInputLabels, "Dodać etykiety do %d pól formularzy bez etykiet", "Add labels to %d unlabeled form fields"},
	{RecExifGPS, "Usunąć współrzędne GPS z metadanych %d obrazów", "Remove GPS coordinates from the metadata of %d images"},
	{RecHTTPS, "Wdrożyć HTTPS na całej stronie", "Enable HTTPS across the whole site"},
	{RecSkipLinks, "Dodać linki pomijania nawigacji", "Add skip navigation links"},
	{RecTabindex, "Naprawić problemy z nawigacją klawiaturową (nieprawidłowe wartości tabindex)", "Fix keyboard navigation problems (invalid tabindex values)"},
	{RecCSP, "Skonfigurować Content Security Policy", "Configure a Content Security Policy"},
	{RecSecurityHeaders, "Skonfigurować %d brakujących nagłówków bezpieczeństwa", "Configure %d missing security headers"},
	{RecBrokenLinks, "Naprawić %d niedziałających linków", "Fix %d broken links"},
	{RecPageSize, "Zoptymalizować rozmiar strony", "Reduce the page size"},
	{RecImageDimensions, "Dodać wymiary do %d obrazów", "Add dimensions to %d images"},
	{RecEmptyHeadings, "Usunąć %d pustych nagłówków", "Remove %d empty headings"},
	{RecNoRecommendation, "Brak rekomendacji", "No recommendations"},

	// Report labels
	{ReportTitle, "Kompleksowa analiza dostępności i wydajności: %s", "Comprehensive accessibility and performance analysis: %s"},
	{Score, "Wynik", "Score"},
	{Overall, "Wynik ogólny", "Overall score"},
	{Grade, "Ocena", "Grade"},
	{Performance, "Wydajność", "Performance"},
	{Accessibility, "Dostępność", "Accessibility"},
	{Security, "Bezpieczeństwo", "Security"},
	{Usability, "Użyteczność", "Usability"},
	{Recommendations, "Rekomendacje", "Recommendations"},
	{Findings, "Wykryte problemy", "Findings"},
	{ImageMetadata, "Metadane obrazów", "Image metadata"},
	{LinkCheck, "Sprawdzanie linków", "Link check"},
	{LoadingTimes, "Czasy ładowania", "Loading times"},
	{DNSLookup, "Czas DNS Lookup", "DNS lookup"},
	{TotalTime, "Całkowity czas ładowania", "Total load time"},
	{ResponseSize, "Rozmiar odpowiedzi", "Response size"},
	{StatusCode, "Kod odpowiedzi HTTP", "HTTP status code"},
	{Resources, "Zasoby", "Resources"},
	{Images, "Obrazy", "Images"},
	{WithoutDimensions, "bez wymiarów", "without dimensions"},
	{CSSFiles, "Pliki CSS", "CSS files"},
	{JSFiles, "Pliki JavaScript", "JavaScript files"},
	{ExternalLinks, "Linki zewnętrzne", "External links"},
	{ImageFormats, "Formaty obrazów", "Image formats"},
	{SEO, "SEO i optymalizacja dla urządzeń mobilnych", "SEO and mobile optimization"},
	{PageTitle, "Tytuł strony", "Page title"},
	{MetaDescription, "Meta description", "Meta description"},
	{Viewport, "Viewport meta", "Viewport meta"},
	{Canonical, "URL kanoniczny", "Canonical URL"},
	{HTTPS, "HTTPS", "HTTPS"},
	{CertExpires, "Certyfikat wygasa za", "Certificate expires in"},
	{SecurityHeaders, "Nagłówki bezpieczeństwa", "Security headers"},
	{Rating, "Ocena bezpieczeństwa", "Security rating"},
	{MixedContent, "Mieszana zawartość", "Mixed content"},
	{XSSVectors, "Potencjalne wektory XSS", "Potential XSS vectors"},
	{InsecureForms, "Niezabezpieczone formularze", "Insecure forms"},
	{Semantic, "Struktura semantyczna", "Semantic structure"},
	{PageLanguage, "Język strony", "Page language"},
	{TextDirection, "Kierunek tekstu", "Text direction"},
	{HeadingIssues, "Błędy hierarchii nagłówków", "Heading hierarchy issues"},
	{EmptyHeadings, "Puste nagłówki", "Empty headings"},
	{Headings, "Nagłówki", "Headings"},
	{Pieces, "%d sztuk", "%d items"},
	{Landmarks, "Struktury HTML5", "HTML5 landmarks"},
	{Keyboard, "Nawigacja klawiaturą", "Keyboard navigation"},
	{Interactive, "Elementy interaktywne", "Interactive elements"},
	{SkipLinks, "Linki pomijania", "Skip links"},
	{TabindexIssues, "Problemy z tabindex", "Tabindex issues"},
	{ScreenReader, "Wsparcie czytników ekranu", "Screen reader support"},
	{ImagesTotal, "Obrazy łącznie", "Images total"},
	{WithAlt, "Z tekstem alternatywnym", "With alternative text"},
	{WithoutAlt, "Bez tekstu alternatywnego", "Without alternative text"},
	{WithEmptyAlt, "Z pustym alt", "With empty alt"},
	{AriaLabels, "Elementy z aria-label", "Elements with aria-label"},
	{Forms, "Formularze", "Forms"},
	{FormFields, "Pola formularzy", "Form fields"},
	{LabeledFields, "Pola z etykietami", "Fields with labels"},
	{RequiredFields, "Pola wymagane", "Required fields"},
	{Fieldsets, "Fieldsets", "Fieldsets"},
	{Legends, "Legends", "Legends"},
	{ContrastIssues, "Problemy z kontrastem", "Contrast issues"},
	{WCAG, "Zgodność z WCAG 2.1", "WCAG 2.1 compliance"},
	{Navigation, "Nawigacja", "Navigation"},
	{NavElements, "Elementy nawigacyjne", "Navigation elements"},
	{Breadcrumbs, "Breadcrumbs", "Breadcrumbs"},
	{SearchFeature, "Wyszukiwarka", "Search"},
	{InternalLinks, "Linki wewnętrzne", "Internal links"},
	{IndicatedLinks, "Linki zewnętrzne z oznaczeniem", "External links with indication"},
	{NavigationClarity, "Przejrzystość nawigacji", "Navigation clarity"},
	{Content, "Zawartość", "Content"},
	{ContentStructure, "Struktura treści", "Content structure"},
	{Readability, "Czytelność", "Readability"},
	{WordsPerSentence, "Średnio słów w zdaniu", "Average words per sentence"},
	{MobileUsability, "Urządzenia mobilne", "Mobile devices"},
	{PagesChecked, "Sprawdzone strony", "Pages checked"},
	{BrokenLinks, "Niedziałające linki", "Broken links"},
	{ImagesChecked, "Sprawdzone obrazy", "Images checked"},
	{ImagesWithMetadata, "Obrazy z metadanymi", "Images with metadata"},
	{PriorityCritical, "Krytyczne", "Critical"},
	{PriorityImportant, "Ważne", "Important"},
	{PriorityMinor, "Drobne", "Minor"},
	{Yes, "Tak", "Yes"},
	{No, "Nie", "No"},
	{Present, "Obecny", "Present"},
	{Absent, "Brak", "Missing"},
	{Days, "%d dni", "%d days"},
	{ReportSaved, "Raport zapisano: %s", "Report saved: %s"},

	// LaTeX document
	{LatexTitle, "Kompleksowy raport dostępności cyfrowej i wydajności strony internetowej", "Comprehensive digital accessibility and performance report"},
	{LatexSubtitle, "Analiza strony", "Website analysis"},
	{LatexAuthor, "Analiza wykonana automatycznie", "Automated analysis"},
	{LatexSummary, "Streszczenie wykonawcze", "Executive summary"},
	{LatexSummaryIntro, "Niniejszy raport przedstawia kompleksową analizę dostępności cyfrowej i wydajności strony internetowej. Analiza została przeprowadzona zgodnie z wytycznymi WCAG 2.1 oraz najlepszymi praktykami w zakresie wydajności stron internetowych.", "This report presents a comprehensive analysis of the digital accessibility and performance of the website. The analysis follows the WCAG 2.1 guidelines and common web performance practice."},
	{LatexKeyResults, "Główne wyniki", "Key results"},
	{LatexPerfAnalysis, "Analiza wydajności", "Performance analysis"},
	{LatexLoadMetrics, "Metryki ładowania", "Loading metrics"},
	{LatexMetric, "Metryka", "Metric"},
	{LatexValue, "Wartość", "Value"},
	{LatexLoadOver, "przekracza zalecane 2 sekundy", "exceeds the recommended 2 seconds"},
	{LatexLoadOK, "mieści się w zalecanych normach", "is within the recommended range"},
	{LatexAssessment, "Ocena", "Assessment"},
	{LatexResourceType, "Typ zasobu", "Resource type"},
	{LatexCount, "Liczba", "Count"},
	{LatexHeader, "Nagłówek", "Header"},
	{LatexStatus, "Status", "Status"},
	{LatexAccAnalysis, "Analiza dostępności cyfrowej", "Digital accessibility analysis"},
	{LatexLevel, "Poziom", "Level"},
	{LatexPoints, "Punkty", "Points"},
	{LatexMaximum, "Maksimum", "Maximum"},
	{LatexPercent, "Procent", "Percent"},
	{LatexCriticalIssues, "Problemy krytyczne (wymagają natychmiastowej uwagi)", "Critical issues (need immediate attention)"},
	{LatexImportant, "Problemy ważne", "Important issues"},
	{LatexMinor, "Ulepszenia dodatkowe", "Additional improvements"},
	{LatexMethodology, "Metodologia i ograniczenia", "Methodology and limitations"},
	{LatexMethodBody, "Analiza została przeprowadzona przy użyciu automatycznych sprawdzeń kodu HTML, nagłówków HTTP i konfiguracji TLS.", "The analysis was performed with automated checks of the HTML source, HTTP headers and TLS configuration."},
	{LatexLimitations, "Ograniczenia", "Limitations"},
	{LatexLimitBody, "Analiza kontrastu obejmuje tylko style osadzone w stronie. Testy funkcjonalności oraz część kryteriów WCAG wymagają weryfikacji manualnej.", "Contrast analysis covers embedded styles only. Functional testing and some WCAG criteria require manual review."},
	{LatexRenewSoon, "(wymaga odnowienia w ciągu 30 dni)", "(must be renewed within 30 days)"},
	{LatexCertOK, "(w porządku)", "(ok)"},
	{LatexLabeledPercent, "Procent pól z etykietami", "Share of labeled fields"},
	{LatexAltPercent, "Procent obrazów z tekstem alt", "Share of images with alt text"},
	{LatexElement, "Element", "Element"},
}
