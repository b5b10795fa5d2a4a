package config

// defaultChannels is the monitored channel set used when CHANNELS is unset.
var defaultChannels = []string{
	"severnygorod", "agapov_fi", "karaulny", "rusbrief", "octgnews", "tass_agency", "baltnews",
	"fontankaspb", "dprunews", "sp_1703", "glavmedia", "houseofcardseurope", "good78news", "rian_ru",
	"belta_telegramm", "radiogovoritmsk", "bbbreaking", "paperpaper_ru", "nevnov", "swodki",
	"vzglyad_ru", "parstodayrussian", "ukraina_ru", "solovievlive", "rossiyaneevropa",
	"online47news", "riafan", "radiomirby", "dirtytatarstan", "rgrunews", "inosmichannel",
	"sputnikby", "rbc_news", "ssigny", "boyart777", "lentadnya", "radiosvoboda", "kommersant",
	"topspb_tv", "allnews47", "rt_russian", "absatzmedia", "match_tv", "truekpru", "bbcrussian",
	"houseofcardsrussia", "OdessaRussi", "Novoeizdanie", "rus_demiurge", "stranaua", "rbc_brief",
	"aifonline", "ostashkonews", "dimsmirnov175", "ateobreaking", "infantmilitario", "UAnotRU",
	"smotri_media", "thehandofthekremlin", "leningrad_guide", "izvestia", "meduzalive",
	"highlylikely20", "rentv_news", "znua_live", "atn_btrc", "vestiru24", "chvkmedia", "espresotb",
	"kshulika", "orientsouthrus", "dwglavnoe", "ZOVcrimea", "Belarus_VPO", "readovkanews", "ranarod",
	"gazetaru", "nexta_live", "ntvnews", "uniannet", "lady_north", "fuckyouthatswhy", "nstarikovru",
	"new_militarycolumnist", "mk_ru", "lab365", "go338", "postovo", "asphaltt", "politkraina",
	"rlz_the_kraken", "ru2ch", "bfmnews", "russtrat", "tv360", "radio_sputnik", "minut30",
	"pluanews", "rtvinews", "interfaxonline", "istorijaoruzijaz", "currenttime", "sputniklive",
	"newsgrpua", "srochnow", "ukrpravda_news", "first_political", "oldlentach", "RUSanctions",
	"Pravda_Gerashchenko", "warhistoryalconafter", "ivan_utenkov13", "TCH_channel",
	"the_moscow_post", "UkraineNow", "openukraine", "ukr_shvydko", "lentachold", "huyovy_kharkiv",
	"kontext_channel", "russica2", "tvrain", "operativnozsu", "rus_now_news", "voynareal",
	"lachentyt", "russianonwars", "dmytrogordon_official", "banksta", "TolkoPoDely", "rybar",
	"rhymestg", "ragnarockkyiv", "ukraina24tv", "bankrollo", "truexanewsua", "sheyhtamir1974",
	"aleksandrsemchenko", "tsaplienko", "varlamov_news", "DavydovIn", "boris_rozhin", "RVvoenkor",
	"redacted6", "zerkalo_io", "voenacher", "Mikle1On", "UaOnlii", "vchkogpu", "kaktovottak",
	"novosti_efir", "shot_shot", "insiderUKR", "slavaded1337", "bloodysx", "breakingmash",
	"readovkaru", "ostorozhno_novosti", "okoo_ukr", "Cbpub", "warfakes", "montyan2", "moscowmap",
	"asupersharij", "nevzorovtv", "V_Zelenskiy_official", "yurasumy",
}

// DefaultChannels returns a copy of the built-in channel handles.
func DefaultChannels() []string {
	out := make([]string, len(defaultChannels))
	copy(out, defaultChannels)

	return out
}
