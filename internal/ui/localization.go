package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle        = "app_title"
	KeyNavigate        = "navigate"
	KeyFile            = "file"
	KeyOpenDownloads   = "open_downloads"
	KeyBack            = "back"
	KeySelectFile      = "select_file"
	KeySelectFolder    = "select_folder"
	KeyNoFilesSelected = "no_files_selected"
	KeyNoMatchingFiles = "no_matching_files"
	KeyPleaseEnterURL  = "please_enter_url"
	KeySubmitting      = "submitting"
	KeyWaiting         = "waiting"
	KeyUploaded        = "uploaded"
	KeyFailed          = "failed"
	KeyNotAvailable    = "not_available"
	KeyLanguage        = "language"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:        "ytm-offline",
		KeyNavigate:        "Navigate",
		KeyFile:            "File",
		KeyOpenDownloads:   "Open downloads folder",
		KeyBack:            "Back",
		KeySelectFile:      "Select file...",
		KeySelectFolder:    "Select folder...",
		KeyNoFilesSelected: "No files selected",
		KeyNoMatchingFiles: "The folder has no matching files",
		KeyPleaseEnterURL:  "Please enter a URL",
		KeySubmitting:      "Submitting...",
		KeyWaiting:         "Waiting",
		KeyUploaded:        "Uploaded",
		KeyFailed:          "Failed",
		KeyNotAvailable:    "Accounts are managed by the backend and are not available in this client yet.",
		KeyLanguage:        "Language",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:        "ytm-offline",
		KeyNavigate:        "Навигация",
		KeyFile:            "Файл",
		KeyOpenDownloads:   "Открыть папку загрузок",
		KeyBack:            "Назад",
		KeySelectFile:      "Выбрать файл...",
		KeySelectFolder:    "Выбрать папку...",
		KeyNoFilesSelected: "Файлы не выбраны",
		KeyNoMatchingFiles: "В папке нет подходящих файлов",
		KeyPleaseEnterURL:  "Пожалуйста, введите URL",
		KeySubmitting:      "Отправка...",
		KeyWaiting:         "Ожидание",
		KeyUploaded:        "Загружено",
		KeyFailed:          "Ошибка",
		KeyNotAvailable:    "Учётные записи управляются сервером и пока недоступны в этом клиенте.",
		KeyLanguage:        "Язык",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:        "ytm-offline",
		KeyNavigate:        "Navegar",
		KeyFile:            "Arquivo",
		KeyOpenDownloads:   "Abrir pasta de downloads",
		KeyBack:            "Voltar",
		KeySelectFile:      "Selecionar arquivo...",
		KeySelectFolder:    "Selecionar pasta...",
		KeyNoFilesSelected: "Nenhum arquivo selecionado",
		KeyNoMatchingFiles: "A pasta não tem arquivos compatíveis",
		KeyPleaseEnterURL:  "Por favor, digite uma URL",
		KeySubmitting:      "Enviando...",
		KeyWaiting:         "Aguardando",
		KeyUploaded:        "Enviado",
		KeyFailed:          "Falhou",
		KeyNotAvailable:    "As contas são gerenciadas pelo servidor e ainda não estão disponíveis neste cliente.",
		KeyLanguage:        "Idioma",
	}
}
