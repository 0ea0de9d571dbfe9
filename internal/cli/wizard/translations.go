package wizard

// QuestionTranslation holds translated strings for a question.
type QuestionTranslation struct {
	Title       string
	Description string
	Options     []OptionTranslation
}

// OptionTranslation holds translated strings for an option.
type OptionTranslation struct {
	Label string
	Desc  string
}

// UIStrings holds translated UI strings.
type UIStrings struct {
	HelpSelect    string
	HelpInput     string
	ErrorRequired string
}

// translations maps language code -> question ID -> translation.
var translations = map[string]map[string]QuestionTranslation{
	"ko": {
		"locale": {
			Title:       "언어 선택",
			Description: "마법사에서 사용하고 생성된 프로젝트에 기록됩니다.",
			Options: []OptionTranslation{
				{Label: "English", Desc: "영어"},
				{Label: "Korean (한국어)", Desc: "한국어"},
				{Label: "Japanese (日本語)", Desc: "일본어"},
				{Label: "Chinese (中文)", Desc: "중국어"},
			},
		},
		"project_name": {
			Title:       "프로젝트 이름 입력",
			Description: "영문자, 숫자, '.', '_', '-'만 사용할 수 있으며 영문자로 시작해야 합니다.",
		},
		"module_path": {
			Title:       "Go 모듈 경로 입력",
			Description: "예: github.com/acme/orders. Enter를 누르면 프로젝트 이름을 사용합니다.",
		},
		"template": {
			Title:       "템플릿 선택",
			Description: "생성할 프로젝트 종류입니다.",
			Options: []OptionTranslation{
				{Label: "API 서비스", Desc: "HTTP JSON API"},
				{Label: "웹 앱", Desc: "서버 렌더링 페이지와 정적 파일"},
				{Label: "CLI 도구", Desc: "명령줄 프로그램, 데이터베이스 없음"},
			},
		},
		"db_engine": {
			Title:       "데이터베이스 엔진 선택",
			Description: "생성된 프로젝트가 연결할 데이터베이스입니다.",
			Options: []OptionTranslation{
				{Label: "없음", Desc: "데이터베이스 없음"},
				{Label: "SQLite", Desc: "내장 파일 데이터베이스"},
				{Label: "MySQL", Desc: "MySQL 또는 MariaDB 서버"},
				{Label: "PostgreSQL", Desc: "PostgreSQL 서버"},
				{Label: "SQL Server", Desc: "Microsoft SQL Server"},
				{Label: "MongoDB", Desc: "문서 데이터베이스"},
			},
		},
		"db_library": {
			Title:       "데이터베이스 라이브러리 선택",
			Description: "생성된 코드가 데이터베이스에 접근하는 방식입니다.",
			Options: []OptionTranslation{
				{Label: "없음", Desc: "데이터베이스 접근 없음"},
				{Label: "database/sql", Desc: "표준 라이브러리만 사용"},
				{Label: "sqlx", Desc: "database/sql 확장"},
				{Label: "GORM", Desc: "ORM"},
				{Label: "MongoDB 드라이버", Desc: "공식 Go 드라이버"},
			},
		},
	},
	"ja": {
		"locale": {
			Title:       "言語を選択",
			Description: "ウィザードで使用され、生成されたプロジェクトに記録されます。",
			Options: []OptionTranslation{
				{Label: "English", Desc: "英語"},
				{Label: "Korean (한국어)", Desc: "韓国語"},
				{Label: "Japanese (日本語)", Desc: "日本語"},
				{Label: "Chinese (中文)", Desc: "中国語"},
			},
		},
		"project_name": {
			Title:       "プロジェクト名を入力",
			Description: "英字、数字、'.'、'_'、'-' のみ使用でき、英字で始める必要があります。",
		},
		"module_path": {
			Title:       "Go モジュールパスを入力",
			Description: "例: github.com/acme/orders。Enter でプロジェクト名を使用します。",
		},
		"template": {
			Title:       "テンプレートを選択",
			Description: "生成するプロジェクトの種類です。",
			Options: []OptionTranslation{
				{Label: "API サービス", Desc: "HTTP JSON API"},
				{Label: "Web アプリ", Desc: "サーバーレンダリングのページと静的ファイル"},
				{Label: "CLI ツール", Desc: "コマンドラインプログラム、データベースなし"},
			},
		},
		"db_engine": {
			Title:       "データベースエンジンを選択",
			Description: "生成されたプロジェクトが接続するデータベースです。",
			Options: []OptionTranslation{
				{Label: "なし", Desc: "データベースなし"},
				{Label: "SQLite", Desc: "組み込みファイルデータベース"},
				{Label: "MySQL", Desc: "MySQL または MariaDB サーバー"},
				{Label: "PostgreSQL", Desc: "PostgreSQL サーバー"},
				{Label: "SQL Server", Desc: "Microsoft SQL Server"},
				{Label: "MongoDB", Desc: "ドキュメントデータベース"},
			},
		},
		"db_library": {
			Title:       "データベースライブラリを選択",
			Description: "生成されたコードがデータベースにアクセスする方法です。",
			Options: []OptionTranslation{
				{Label: "なし", Desc: "データベースアクセスなし"},
				{Label: "database/sql", Desc: "標準ライブラリのみ"},
				{Label: "sqlx", Desc: "database/sql の拡張"},
				{Label: "GORM", Desc: "ORM"},
				{Label: "MongoDB ドライバー", Desc: "公式 Go ドライバー"},
			},
		},
	},
	"zh": {
		"locale": {
			Title:       "选择语言",
			Description: "用于此向导，并记录在生成的项目中。",
			Options: []OptionTranslation{
				{Label: "English", Desc: "英语"},
				{Label: "Korean (한국어)", Desc: "韩语"},
				{Label: "Japanese (日本語)", Desc: "日语"},
				{Label: "Chinese (中文)", Desc: "中文"},
			},
		},
		"project_name": {
			Title:       "输入项目名称",
			Description: "只能使用字母、数字、'.'、'_' 和 '-'，且必须以字母开头。",
		},
		"module_path": {
			Title:       "输入 Go 模块路径",
			Description: "例如 github.com/acme/orders。按 Enter 使用项目名称。",
		},
		"template": {
			Title:       "选择模板",
			Description: "要生成的项目类型。",
			Options: []OptionTranslation{
				{Label: "API 服务", Desc: "HTTP JSON API"},
				{Label: "Web 应用", Desc: "服务端渲染页面和静态资源"},
				{Label: "CLI 工具", Desc: "命令行程序，无数据库"},
			},
		},
		"db_engine": {
			Title:       "选择数据库引擎",
			Description: "生成的项目所连接的数据库。",
			Options: []OptionTranslation{
				{Label: "无", Desc: "不使用数据库"},
				{Label: "SQLite", Desc: "嵌入式文件数据库"},
				{Label: "MySQL", Desc: "MySQL 或 MariaDB 服务器"},
				{Label: "PostgreSQL", Desc: "PostgreSQL 服务器"},
				{Label: "SQL Server", Desc: "Microsoft SQL Server"},
				{Label: "MongoDB", Desc: "文档数据库"},
			},
		},
		"db_library": {
			Title:       "选择数据库库",
			Description: "生成的代码访问数据库的方式。",
			Options: []OptionTranslation{
				{Label: "无", Desc: "不访问数据库"},
				{Label: "database/sql", Desc: "仅使用标准库"},
				{Label: "sqlx", Desc: "database/sql 扩展"},
				{Label: "GORM", Desc: "ORM"},
				{Label: "MongoDB 驱动", Desc: "官方 Go 驱动"},
			},
		},
	},
}

// uiStrings maps language code to UI strings.
var uiStrings = map[string]UIStrings{
	"en": {
		HelpSelect:    "Use arrow keys to navigate, Enter to select, Esc to cancel",
		HelpInput:     "Type your answer, Enter to confirm, Esc to cancel",
		ErrorRequired: "This field is required",
	},
	"ko": {
		HelpSelect:    "방향키로 이동, Enter로 선택, Esc로 취소",
		HelpInput:     "답변 입력 후 Enter로 확인, Esc로 취소",
		ErrorRequired: "필수 입력 항목입니다",
	},
	"ja": {
		HelpSelect:    "矢印キーで移動、Enterで選択、Escでキャンセル",
		HelpInput:     "入力してEnterで確定、Escでキャンセル",
		ErrorRequired: "この項目は必須です",
	},
	"zh": {
		HelpSelect:    "使用方向键导航，Enter选择，Esc取消",
		HelpInput:     "输入答案，Enter确认，Esc取消",
		ErrorRequired: "此字段为必填项",
	},
}

// GetLocalizedQuestion returns a localized copy of the question.
// If no translation exists for the locale, returns the original question.
func GetLocalizedQuestion(q *Question, locale string) Question {
	if locale == "en" || locale == "" {
		return *q
	}

	langTranslations, ok := translations[locale]
	if !ok {
		return *q
	}

	trans, ok := langTranslations[q.ID]
	if !ok {
		return *q
	}

	localized := *q
	if trans.Title != "" {
		localized.Title = trans.Title
	}
	if trans.Description != "" {
		localized.Description = trans.Description
	}

	// Options are matched by position; values are never translated.
	if len(trans.Options) > 0 && len(q.Options) == len(trans.Options) {
		localized.Options = make([]Option, len(q.Options))
		for i, opt := range q.Options {
			localized.Options[i] = Option{
				Label: trans.Options[i].Label,
				Value: opt.Value,
				Desc:  trans.Options[i].Desc,
			}
			if localized.Options[i].Label == "" {
				localized.Options[i].Label = opt.Label
			}
			if localized.Options[i].Desc == "" {
				localized.Options[i].Desc = opt.Desc
			}
		}
	}

	return localized
}

// GetUIStrings returns UI strings for the given locale.
// Returns English strings if locale is not found.
func GetUIStrings(locale string) UIStrings {
	if s, ok := uiStrings[locale]; ok {
		return s
	}
	return uiStrings["en"]
}
