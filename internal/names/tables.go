// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

// The tables in this file are read-only reference data shared by every
// Resolver.

// hanSurnames holds common single-character Chinese surnames in simplified
// and traditional forms, plus the most frequent Korean surnames in Hanja.
var hanSurnames = setOf(
	"王", "李", "张", "張", "刘", "劉", "陈", "陳", "杨", "楊", "黄", "黃", "赵", "趙",
	"吴", "吳", "周", "徐", "孙", "孫", "马", "馬", "朱", "胡", "郭", "何", "高", "林",
	"罗", "羅", "郑", "鄭", "梁", "谢", "謝", "宋", "唐", "许", "許", "韩", "韓", "冯",
	"馮", "邓", "鄧", "曹", "彭", "曾", "肖", "蕭", "田", "董", "袁", "潘", "于", "蒋",
	"蔣", "蔡", "余", "杜", "叶", "葉", "程", "苏", "蘇", "魏", "吕", "呂", "丁", "任",
	"沈", "姚", "卢", "盧", "姜", "崔", "钟", "鍾", "谭", "譚", "陆", "陸", "汪", "范",
	"金", "石", "廖", "贾", "賈", "夏", "韦", "韋", "付", "方", "白", "邹", "鄒", "孟",
	"熊", "秦", "邱", "江", "尹", "薛", "闫", "閻", "段", "雷", "侯", "龙", "龍", "史",
	"陶", "黎", "贺", "賀", "顾", "顧", "毛", "郝", "龚", "龔", "邵", "万", "萬", "钱",
	"錢", "严", "嚴", "覃", "武", "戴", "莫", "孔", "向", "汤", "湯", "朴", "柳", "申",
	"권", "김", "이", "박", "최", "정", "강", "조", "윤", "장", "임", "한", "오", "서",
	"신", "황", "안", "송", "전", "홍", "유", "고", "문", "양", "손", "배", "백", "허",
	"남", "심", "노", "하", "곽", "성", "차", "주", "우", "구", "민", "류", "나", "진",
)

// compoundSurnames holds two-character surnames: Chinese compound surnames
// and common Japanese surnames.
var compoundSurnames = setOf(
	"欧阳", "歐陽", "司马", "司馬", "诸葛", "諸葛", "上官", "东方", "東方", "皇甫",
	"慕容", "令狐", "公孙", "公孫", "夏侯", "尉迟", "尉遲", "宇文", "长孙", "長孫",
	"佐藤", "鈴木", "高橋", "田中", "伊藤", "渡辺", "渡邊", "山本", "中村", "小林",
	"加藤", "吉田", "山田", "佐々木", "山口", "松本", "井上", "木村", "清水", "斎藤",
	"斉藤", "山崎", "森田", "池田", "橋本", "阿部", "石川", "山下", "中島", "石井",
	"小川", "前田", "岡田", "長谷川", "藤田", "後藤", "近藤", "村上", "遠藤", "青木",
	"坂本", "西村", "福田", "太田", "三浦", "藤井", "岡本", "松田", "中川", "中野",
	"原田", "小野", "田村", "竹内", "金子", "和田", "中山", "藤原", "石田", "上田",
	"森本", "酒井", "工藤", "宮崎", "横山", "宮本", "内田", "高木", "安藤", "島田",
	"남궁", "황보", "제갈", "선우", "독고",
)

// romanizedSurnames holds frequent East and Southeast Asian surnames in
// their usual Latin spellings, lowercased.
var romanizedSurnames = setOf(
	// Chinese (pinyin and Wade-Giles / Cantonese variants)
	"wang", "li", "zhang", "liu", "chen", "yang", "huang", "zhao", "wu", "zhou",
	"xu", "sun", "zhu", "hu", "guo", "he", "lin", "luo", "zheng", "liang",
	"xie", "song", "tang", "han", "feng", "deng", "cao", "peng", "zeng", "xiao",
	"tian", "dong", "yuan", "pan", "jiang", "cai", "yu", "du", "ye", "cheng",
	"su", "wei", "lu", "ding", "ren", "shen", "yao", "cui", "zhong", "tan",
	"fan", "jin", "shi", "liao", "jia", "xia", "fu", "fang", "bai", "zou",
	"meng", "xiong", "qin", "qiu", "yin", "xue", "yan", "duan", "lei", "hou",
	"long", "tao", "gu", "mao", "hao", "gong", "shao", "qian", "dai", "mo",
	"kong", "xiang", "chan", "cheung", "chow", "chiu", "chung", "fong", "ho",
	"hsu", "hsieh", "huang", "kwok", "kwan", "lam", "lau", "leung", "liu",
	"mak", "ng", "tsai", "tse", "tsang", "wong", "yeung", "yip", "chang",
	// Korean
	"kim", "lee", "park", "choi", "jung", "jeong", "kang", "cho", "yoon",
	"jang", "lim", "han", "oh", "seo", "shin", "hwang", "ahn", "song", "hong",
	"yoo", "ko", "moon", "yang", "son", "bae", "baek", "heo", "nam", "shim",
	"noh", "ha", "kwak", "sung", "cha", "joo", "woo", "koo", "min", "ryu",
	// Japanese
	"sato", "suzuki", "takahashi", "tanaka", "watanabe", "ito", "yamamoto",
	"nakamura", "kobayashi", "kato", "yoshida", "yamada", "sasaki", "yamaguchi",
	"matsumoto", "inoue", "kimura", "hayashi", "shimizu", "yamazaki", "mori",
	"abe", "ikeda", "hashimoto", "yamashita", "ishikawa", "nakajima", "maeda",
	"fujita", "ogawa", "goto", "okada", "hasegawa", "murakami", "kondo",
	"ishii", "saito", "sakamoto", "endo", "aoki", "fujii", "nishimura",
	"fukuda", "ota", "miura", "fujiwara", "okamoto", "matsuda", "nakagawa",
	"shibata", "harada", "ono", "tamura", "takeuchi", "kaneko", "wada",
	// Vietnamese
	"nguyen", "tran", "le", "pham", "hoang", "huynh", "phan", "vu", "vo",
	"dang", "bui", "do", "ngo", "duong", "ly",
)

// honorifics are dropped from the front of a name.
var honorifics = setOf(
	"dr", "dr.", "mr", "mr.", "mrs", "mrs.", "ms", "ms.", "miss", "prof",
	"prof.", "professor", "sir", "dame", "rev", "rev.", "fr", "fr.",
)

// suffixes are dropped from the end of a name.
var suffixes = setOf(
	"jr", "jr.", "sr", "sr.", "ii", "iii", "iv", "phd", "ph.d.", "md", "m.d.",
	"esq", "esq.", "dds", "jd",
)

// particles start a family name when they appear after the first token.
var particles = setOf(
	"al", "bin", "da", "dal", "das", "de", "del", "della", "dei", "den", "der",
	"di", "do", "dos", "du", "el", "ibn", "la", "le", "st.", "ten", "ter",
	"van", "von", "zu",
)

// orgWords mark a string as an organization name wherever they appear as a
// whole word.
var orgWords = setOf(
	"academy", "agency", "alliance", "association", "authors", "bureau",
	"center", "centre", "college", "collaboration", "committee", "community",
	"company", "consortium", "contributors", "cooperative", "corp", "corp.",
	"corporation", "council", "department", "developers", "development",
	"division", "enterprises", "federation", "foundation", "gmbh", "group",
	"inc", "inc.", "incorporated", "initiative", "institute", "institution",
	"lab", "labs", "laboratories", "laboratory", "library", "limited", "llc",
	"llp", "ltd", "ltd.", "maintainers", "ministry", "museum", "network",
	"observatory", "office", "organisation", "organization", "partners",
	"plc", "program", "programme", "project", "research", "school", "sciences",
	"services", "society", "software", "solutions", "studio", "systems",
	"team", "technologies", "tools", "trust", "university", "ag", "s.a.",
	"sa", "srl", "bv", "b.v.", "oy", "ab", "kk", "pty",
)

// givenNames are common first names. A leading match makes the local
// classifier confident that a string names a person.
var givenNames = setOf(
	"aaron", "adam", "adrian", "ahmed", "aisha", "alan", "albert", "alejandro",
	"alex", "alexander", "alexandra", "ali", "alice", "amanda", "amir", "amy",
	"ana", "andrea", "andreas", "andrew", "angela", "ann", "anna", "anne",
	"anthony", "antonio", "arjun", "ashley", "barbara", "ben", "benjamin",
	"bob", "brian", "bruce", "carlos", "carol", "caroline", "catherine",
	"charles", "chris", "christian", "christina", "christopher", "claire",
	"daniel", "david", "deborah", "diana", "diego", "dmitri", "elena",
	"elizabeth", "emily", "emma", "eric", "fatima", "fernando", "francesca",
	"francisco", "frank", "gabriel", "george", "giovanni", "grace", "hannah",
	"hans", "helen", "henry", "hiroshi", "ian", "igor", "ivan", "jack",
	"james", "jane", "jason", "javier", "jean", "jennifer", "jessica", "jim",
	"joan", "joe", "johannes", "john", "jonathan", "jorge", "jose", "joseph",
	"juan", "julia", "julie", "karen", "katherine", "kenji", "kevin", "laura",
	"lars", "linda", "lisa", "luca", "lucas", "luis", "maria", "marie",
	"mark", "martin", "mary", "matthew", "michael", "michelle", "miguel",
	"mike", "mohammed", "muhammad", "nancy", "natalia", "nicholas", "nick",
	"nicole", "olga", "olivia", "omar", "oscar", "pablo", "patricia", "paul",
	"pedro", "peter", "pierre", "priya", "rachel", "rahul", "rebecca",
	"richard", "robert", "roberto", "rosa", "ryan", "samuel", "sandra",
	"sarah", "sergei", "sofia", "sophie", "stefan", "stephen", "steven",
	"susan", "takashi", "thomas", "tim", "timothy", "tom", "victor",
	"william", "wei", "xin", "yuki", "yusuf",
)

// commonWords are ordinary English words that rarely appear in personal
// names. Their presence makes the local classifier lean towards ORG.
var commonWords = setOf(
	"a", "an", "and", "api", "app", "apps", "cloud", "code", "data",
	"digital", "for", "free", "global", "hub", "in", "info", "international",
	"io", "kit", "national", "new", "of", "on", "open", "platform", "public",
	"science", "source", "space", "tech", "the", "to", "web", "works",
)

func setOf(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}
