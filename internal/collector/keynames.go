package collector

import "github.com/nilszeilon/keystats/internal/domain"

// keyNames maps Linux KEY_* codes to display names.
var keyNames = map[uint32]string{
	1:     "Esc",
	2:     "1",
	3:     "2",
	4:     "3",
	5:     "4",
	6:     "5",
	7:     "6",
	8:     "7",
	9:     "8",
	10:    "9",
	11:    "0",
	12:    "Minus",
	13:    "Equal",
	14:    "Backspace",
	15:    "Tab",
	16:    "Q",
	17:    "W",
	18:    "E",
	19:    "R",
	20:    "T",
	21:    "Y",
	22:    "U",
	23:    "I",
	24:    "O",
	25:    "P",
	26:    "LeftBrace",
	27:    "RightBrace",
	28:    "Enter",
	29:    "LeftCtrl",
	30:    "A",
	31:    "S",
	32:    "D",
	33:    "F",
	34:    "G",
	35:    "H",
	36:    "J",
	37:    "K",
	38:    "L",
	39:    "Semicolon",
	40:    "Apostrophe",
	41:    "Grave",
	42:    "LeftShift",
	43:    "Backslash",
	44:    "Z",
	45:    "X",
	46:    "C",
	47:    "V",
	48:    "B",
	49:    "N",
	50:    "M",
	51:    "Comma",
	52:    "Dot",
	53:    "Slash",
	54:    "RightShift",
	55:    "KPAsterisk",
	56:    "LeftAlt",
	57:    "Space",
	58:    "CapsLock",
	59:    "F1",
	60:    "F2",
	61:    "F3",
	62:    "F4",
	63:    "F5",
	64:    "F6",
	65:    "F7",
	66:    "F8",
	67:    "F9",
	68:    "F10",
	69:    "NumLock",
	70:    "ScrollLock",
	71:    "KP7",
	72:    "KP8",
	73:    "KP9",
	74:    "KPMinus",
	75:    "KP4",
	76:    "KP5",
	77:    "KP6",
	78:    "KPPlus",
	79:    "KP1",
	80:    "KP2",
	81:    "KP3",
	82:    "KP0",
	83:    "KPDot",
	85:    "Zenkakuhankaku",
	86:    "102nd",
	87:    "F11",
	88:    "F12",
	89:    "RO",
	90:    "Katakana",
	91:    "Hiragana",
	92:    "Henkan",
	93:    "KatakanaHiragana",
	94:    "Muhenkan",
	95:    "KPJPComma",
	96:    "KPEnter",
	97:    "RightCtrl",
	98:    "KPSlash",
	99:    "SysRq",
	100:   "RightAlt",
	101:   "LineFeed",
	102:   "Home",
	103:   "Up",
	104:   "PageUp",
	105:   "Left",
	106:   "Right",
	107:   "End",
	108:   "Down",
	109:   "PageDown",
	110:   "Insert",
	111:   "Delete",
	112:   "Macro",
	113:   "Mute",
	114:   "VolumeDown",
	115:   "VolumeUp",
	116:   "Power",
	117:   "KPEqual",
	118:   "KPPlusMinus",
	119:   "Pause",
	120:   "Scale",
	121:   "KPComma",
	122:   "Hangeul",
	123:   "Hanja",
	124:   "Yen",
	125:   "LeftMeta",
	126:   "RightMeta",
	127:   "Compose",
	128:   "Stop",
	129:   "Again",
	130:   "Props",
	131:   "Undo",
	132:   "Front",
	133:   "Copy",
	134:   "Open",
	135:   "Paste",
	136:   "Find",
	137:   "Cut",
	138:   "Help",
	139:   "Menu",
	140:   "Calc",
	141:   "Setup",
	142:   "Sleep",
	143:   "Wakeup",
	144:   "File",
	145:   "SendFile",
	146:   "DeleteFile",
	147:   "Xfer",
	148:   "Prog1",
	149:   "Prog2",
	150:   "WWW",
	151:   "MSDOS",
	152:   "ScreenLock",
	153:   "RotateDisplay",
	154:   "CycleWindows",
	155:   "Mail",
	156:   "Bookmarks",
	157:   "Computer",
	158:   "Back",
	159:   "Forward",
	160:   "CloseCD",
	161:   "EjectCD",
	162:   "EjectCloseCD",
	163:   "NextSong",
	164:   "PlayPause",
	165:   "PreviousSong",
	166:   "StopCD",
	167:   "Record",
	168:   "Rewind",
	169:   "Phone",
	170:   "ISO",
	171:   "Config",
	172:   "Homepage",
	173:   "Refresh",
	174:   "Exit",
	175:   "Move",
	176:   "Edit",
	177:   "ScrollUp",
	178:   "ScrollDown",
	179:   "KPLeftParen",
	180:   "KPRightParen",
	181:   "New",
	182:   "Redo",
	183:   "F13",
	184:   "F14",
	185:   "F15",
	186:   "F16",
	187:   "F17",
	188:   "F18",
	189:   "F19",
	190:   "F20",
	191:   "F21",
	192:   "F22",
	193:   "F23",
	194:   "F24",
	200:   "PlayCD",
	201:   "PauseCD",
	202:   "Prog3",
	203:   "Prog4",
	204:   "AllApplications",
	205:   "Suspend",
	206:   "Close",
	207:   "Play",
	208:   "FastForward",
	209:   "BassBoost",
	210:   "Print",
	211:   "HP",
	212:   "Camera",
	213:   "Sound",
	214:   "Question",
	215:   "Email",
	216:   "Chat",
	217:   "Search",
	218:   "Connect",
	219:   "Finance",
	220:   "Sport",
	221:   "Shop",
	222:   "AltErase",
	223:   "Cancel",
	224:   "BrightnessDown",
	225:   "BrightnessUp",
	226:   "Media",
	227:   "SwitchVideoMode",
	228:   "KbdIllumToggle",
	229:   "KbdIllumDown",
	230:   "KbdIllumUp",
	231:   "Send",
	232:   "Reply",
	233:   "ForwardMail",
	234:   "Save",
	235:   "Documents",
	236:   "Battery",
	237:   "Bluetooth",
	238:   "WLAN",
	239:   "UWB",
	240:   "Unknown",
	241:   "VideoNext",
	242:   "VideoPrev",
	243:   "BrightnessCycle",
	244:   "BrightnessAuto",
	245:   "DisplayOff",
	246:   "WWAN",
	247:   "RFKill",
	248:   "MicMute",
	0x160: "OK",
	0x161: "Select",
	0x162: "Goto",
	0x163: "Clear",
	0x164: "Power2",
	0x165: "Option",
	0x166: "Info",
	0x167: "Time",
	0x168: "Vendor",
	0x169: "Archive",
	0x16a: "Program",
	0x16b: "Channel",
	0x16c: "Favorites",
	0x16d: "EPG",
	0x16e: "PVR",
	0x16f: "MHP",
	0x170: "Language",
	0x171: "Title",
	0x172: "Subtitle",
	0x173: "Angle",
	0x174: "FullScreen",
	0x175: "Mode",
	0x176: "Keyboard",
	0x177: "AspectRatio",
	0x178: "PC",
	0x179: "TV",
	0x17a: "TV2",
	0x17b: "VCR",
	0x17c: "VCR2",
	0x17d: "Sat",
	0x17e: "Sat2",
	0x17f: "CD",
	0x180: "Tape",
	0x181: "Radio",
	0x182: "Tuner",
	0x183: "Player",
	0x184: "Text",
	0x185: "DVD",
	0x186: "Aux",
	0x187: "MP3",
	0x188: "Audio",
	0x189: "Video",
	0x18a: "Directory",
	0x18b: "List",
	0x18c: "Memo",
	0x18d: "Calendar",
	0x18e: "Red",
	0x18f: "Green",
	0x190: "Yellow",
	0x191: "Blue",
	0x192: "ChannelUp",
	0x193: "ChannelDown",
	0x1d0: "Fn",
	0x1d1: "FnEsc",
	0x1d2: "FnF1",
	0x1d3: "FnF2",
	0x1d4: "FnF3",
	0x1d5: "FnF4",
	0x1d6: "FnF5",
	0x1d7: "FnF6",
	0x1d8: "FnF7",
	0x1d9: "FnF8",
	0x1da: "FnF9",
	0x1db: "FnF10",
	0x1dc: "FnF11",
	0x1dd: "FnF12",
	0x1e4: "FnF",
	0x1e5: "FnS",
	0x1e6: "FnB",
	0x240: "Dictate",
	0x243: "EmojiPicker",
}

// KeyName resolves a scan code to its display name, falling back to "UNKNOWN".
func KeyName(code uint32) string {
	if name, ok := keyNames[code]; ok {
		return name
	}
	return domain.UnknownKeyName
}
