package gewe

// Endpoint table of the gateway API.
//
// Login notes from the gateway: the first GetLoginQrCode for an account passes
// an empty appId and the gateway allocates one; every later login of that
// account must reuse it. A login QR code stays valid for roughly 230 seconds.

func newEndpoint(area, name, route string, fields ...Field) *Endpoint {
	return &Endpoint{Name: name, Area: area, Route: route, Fields: fields}
}

func str(wire string) Field        { return Field{Wire: wire, Kind: KindString} }
func num(wire string) Field        { return Field{Wire: wire, Kind: KindInt} }
func flag(wire string) Field       { return Field{Wire: wire, Kind: KindBool} }
func wxid(wire string) Field       { return Field{Wire: wire, Kind: KindWxid} }
func wxidList(wire string) Field   { return Field{Wire: wire, Kind: KindWxidList} }
func strList(wire string) Field    { return Field{Wire: wire, Kind: KindStringList} }
func joinedStrs(wire string) Field { return Field{Wire: wire, Kind: KindJoinedStrings} }
func joinedIDs(wire string) Field  { return Field{Wire: wire, Kind: KindJoinedWxids} }

var appID = str("appId")

// --- Tools ---

var (
	GetToken    = newEndpoint("tools", "GetToken", TokenRoute)
	SetCallback = newEndpoint("tools", "SetCallback", "/tools/setCallBack",
		str("token"), str("callbackUrl"))
)

// --- Login ---

var (
	GetLoginQrCode = newEndpoint("login", "GetLoginQrCode", "/login/getLoginQrCode", appID)
	CheckLogin     = newEndpoint("login", "CheckLogin", "/login/checkLogin",
		appID, str("uuid"), str("captchCode"))
	Logout      = newEndpoint("login", "Logout", "/login/logout", appID)
	DialogLogin = newEndpoint("login", "DialogLogin", "/login/dialogLogin", appID)
	CheckOnline = newEndpoint("login", "CheckOnline", "/login/checkOnline", appID)
)

// --- Personal ---

var (
	GetProfile        = newEndpoint("personal", "GetProfile", "/personal/getProfile", appID)
	GetPersonalQrCode = newEndpoint("personal", "GetPersonalQrCode", "/personal/getQrCode", appID)
	GetSafetyInfo     = newEndpoint("personal", "GetSafetyInfo", "/personal/getSafetyInfo", appID)
	PrivacySettings   = newEndpoint("personal", "PrivacySettings", "/personal/privacySettings",
		appID, num("option"), flag("open"))
	UpdateProfile = newEndpoint("personal", "UpdateProfile", "/personal/updateProfile",
		appID, str("city"), str("country"), str("nickName"), str("province"), num("sex"), str("signature"))
	UpdateHeadImg = newEndpoint("personal", "UpdateHeadImg", "/personal/updateHeadImg",
		appID, str("headImgUrl"))
)

// --- Message ---

var toWxid = wxid("toWxid")

var (
	PostText = newEndpoint("message", "PostText", "/message/postText",
		appID, toWxid, str("content"), str("ats"))
	PostFile = newEndpoint("message", "PostFile", "/message/postFile",
		appID, toWxid, str("fileUrl"), str("fileName"))
	PostImage = newEndpoint("message", "PostImage", "/message/postImage",
		appID, toWxid, str("imgUrl"))
	PostVoice = newEndpoint("message", "PostVoice", "/message/postVoice",
		appID, toWxid, str("voiceUrl"), num("voiceDuration"))
	PostVideo = newEndpoint("message", "PostVideo", "/message/postVideo",
		appID, toWxid, str("videoUrl"), str("thumbUrl"), num("videoDuration"))
	PostLink = newEndpoint("message", "PostLink", "/message/postLink",
		appID, toWxid, str("title"), str("desc"), str("linkUrl"), str("thumbUrl"))
	PostNameCard = newEndpoint("message", "PostNameCard", "/message/postNameCard",
		appID, toWxid, str("nickName"), str("nameCardWxid"))
	PostEmoji = newEndpoint("message", "PostEmoji", "/message/postEmoji",
		appID, toWxid, str("emojiMd5"), str("emojiSize"))
	PostAppMsg = newEndpoint("message", "PostAppMsg", "/message/postAppMsg",
		appID, toWxid, str("appmsg"))
	PostMiniApp = newEndpoint("message", "PostMiniApp", "/message/postMiniApp",
		appID, toWxid, str("miniAppId"), str("displayName"), str("pagePath"),
		str("coverImgUrl"), str("title"), str("userName"))

	ForwardFile = newEndpoint("message", "ForwardFile", "/message/forwardFile",
		appID, toWxid, str("xml"))
	ForwardImage = newEndpoint("message", "ForwardImage", "/message/forwardImage",
		appID, toWxid, str("xml"))
	ForwardVideo = newEndpoint("message", "ForwardVideo", "/message/forwardVideo",
		appID, toWxid, str("xml"))
	ForwardUrl = newEndpoint("message", "ForwardUrl", "/message/forwardUrl",
		appID, toWxid, str("xml"))
	ForwardMiniApp = newEndpoint("message", "ForwardMiniApp", "/message/forwardMiniApp",
		appID, toWxid, str("xml"), str("coverImgUrl"))

	RevokeMsg = newEndpoint("message", "RevokeMsg", "/message/revokeMsg",
		appID, toWxid, str("msgId"), str("newMsgId"), str("createTime"))
)

// --- Contacts ---

var (
	FetchContactsList      = newEndpoint("contacts", "FetchContactsList", "/contacts/fetchContactsList", appID)
	FetchContactsListCache = newEndpoint("contacts", "FetchContactsListCache", "/contacts/fetchContactsListCache", appID)
	SearchContacts         = newEndpoint("contacts", "SearchContacts", "/contacts/search",
		appID, str("contactsInfo"))
	AddContacts = newEndpoint("contacts", "AddContacts", "/contacts/addContacts",
		appID, num("scene"), num("option"), str("v3"), str("v4"), str("content"))
	DeleteFriend = newEndpoint("contacts", "DeleteFriend", "/contacts/deleteFriend",
		appID, wxid("wxid"))
	UploadPhoneAddressList = newEndpoint("contacts", "UploadPhoneAddressList", "/contacts/uploadPhoneAddressList",
		appID, strList("phones"), num("opType"))
	SetFriendPermissions = newEndpoint("contacts", "SetFriendPermissions", "/contacts/setFriendPermissions",
		appID, wxid("wxid"), flag("onlyChat"))
	SetFriendRemark = newEndpoint("contacts", "SetFriendRemark", "/contacts/setFriendRemark",
		appID, wxid("wxid"), str("remark"))
	GetBriefInfo = newEndpoint("contacts", "GetBriefInfo", "/contacts/getBriefInfo",
		appID, wxidList("wxids"))
)

// --- Group ---

var chatroomID = str("chatroomId")

var (
	CreateChatroom = newEndpoint("group", "CreateChatroom", "/group/createChatroom",
		appID, wxidList("wxids"))
	ModifyChatroomName = newEndpoint("group", "ModifyChatroomName", "/group/modifyChatroomName",
		appID, str("chatroomName"), chatroomID)
	ModifyChatroomRemark = newEndpoint("group", "ModifyChatroomRemark", "/group/modifyChatroomRemark",
		appID, str("chatroomRemark"), chatroomID)
	ModifyChatroomNickNameForSelf = newEndpoint("group", "ModifyChatroomNickNameForSelf", "/group/modifyChatroomNickNameForSelf",
		appID, str("nickName"), chatroomID)
	InviteMember = newEndpoint("group", "InviteMember", "/group/inviteMember",
		appID, wxidList("wxids"), chatroomID, str("reason"))
	RemoveMember = newEndpoint("group", "RemoveMember", "/group/removeMember",
		appID, joinedIDs("wxids"), chatroomID)
	QuitChatroom            = newEndpoint("group", "QuitChatroom", "/group/quitChatroom", appID, chatroomID)
	DisbandChatroom         = newEndpoint("group", "DisbandChatroom", "/group/disbandChatroom", appID, chatroomID)
	GetChatroomInfo         = newEndpoint("group", "GetChatroomInfo", "/group/getChatroomInfo", appID, chatroomID)
	GetChatroomMemberList   = newEndpoint("group", "GetChatroomMemberList", "/group/getChatroomMemberList", appID, chatroomID)
	GetChatroomMemberDetail = newEndpoint("group", "GetChatroomMemberDetail", "/group/getChatroomMemberDetail",
		appID, chatroomID, wxidList("memberWxids"))
	GetChatroomAnnouncement = newEndpoint("group", "GetChatroomAnnouncement", "/group/getChatroomAnnouncement", appID, chatroomID)
	SetChatroomAnnouncement = newEndpoint("group", "SetChatroomAnnouncement", "/group/setChatroomAnnouncement",
		appID, chatroomID, str("content"))
	AgreeJoinRoom = newEndpoint("group", "AgreeJoinRoom", "/group/agreeJoinRoom",
		appID, str("url"))
	AddGroupMemberAsFriend = newEndpoint("group", "AddGroupMemberAsFriend", "/group/addGroupMemberAsFriend",
		appID, str("memberWxid"), chatroomID, str("content"))
	GetChatroomQrCode = newEndpoint("group", "GetChatroomQrCode", "/group/getChatroomQrCode", appID, chatroomID)
	SaveContractList  = newEndpoint("group", "SaveContractList", "/group/saveContractList",
		appID, num("operType"), chatroomID)
	AdminOperate = newEndpoint("group", "AdminOperate", "/group/adminOperate",
		appID, chatroomID, strList("wxids"), num("operType"))
	PinChat = newEndpoint("group", "PinChat", "/group/pinChat",
		appID, flag("top"), chatroomID)
	SetMsgSilence = newEndpoint("group", "SetMsgSilence", "/group/setMsgSilence",
		appID, flag("silence"), chatroomID)
	JoinRoomUsingQRCode = newEndpoint("group", "JoinRoomUsingQRCode", "/group/joinRoomUsingQRCode",
		appID, str("qrUrl"))
	RoomAccessApplyCheckApprove = newEndpoint("group", "RoomAccessApplyCheckApprove", "/group/roomAccessApplyCheckApprove",
		appID, str("newMsgId"), chatroomID, str("msgContent"))
)

// --- Favorites ---

var (
	SyncFavor       = newEndpoint("favor", "SyncFavor", "/favor/sync", appID, str("syncKey"))
	GetFavorContent = newEndpoint("favor", "GetFavorContent", "/favor/getContent", appID, num("favId"))
	DeleteFavor     = newEndpoint("favor", "DeleteFavor", "/favor/delete", appID, num("favId"))
)

// --- Labels ---

var (
	AddLabel           = newEndpoint("label", "AddLabel", "/label/add", appID, str("labelName"))
	DeleteLabel        = newEndpoint("label", "DeleteLabel", "/label/delete", appID, str("labelIds"))
	ListLabels         = newEndpoint("label", "ListLabels", "/label/list", appID)
	ModifyLabelMembers = newEndpoint("label", "ModifyLabelMembers", "/label/modifyMemberList",
		appID, joinedStrs("labelIds"), wxidList("wxIds"))
)

func init() {
	mustRegister(
		GetToken, SetCallback,

		GetLoginQrCode, CheckLogin, Logout, DialogLogin, CheckOnline,

		GetProfile, GetPersonalQrCode, GetSafetyInfo, PrivacySettings, UpdateProfile, UpdateHeadImg,

		PostText, PostFile, PostImage, PostVoice, PostVideo, PostLink, PostNameCard,
		PostEmoji, PostAppMsg, PostMiniApp,
		ForwardFile, ForwardImage, ForwardVideo, ForwardUrl, ForwardMiniApp,
		RevokeMsg,

		FetchContactsList, FetchContactsListCache, SearchContacts, AddContacts, DeleteFriend,
		UploadPhoneAddressList, SetFriendPermissions, SetFriendRemark, GetBriefInfo,

		CreateChatroom, ModifyChatroomName, ModifyChatroomRemark, ModifyChatroomNickNameForSelf,
		InviteMember, RemoveMember, QuitChatroom, DisbandChatroom, GetChatroomInfo,
		GetChatroomMemberList, GetChatroomMemberDetail, GetChatroomAnnouncement,
		SetChatroomAnnouncement, AgreeJoinRoom, AddGroupMemberAsFriend, GetChatroomQrCode,
		SaveContractList, AdminOperate, PinChat, SetMsgSilence, JoinRoomUsingQRCode,
		RoomAccessApplyCheckApprove,

		SyncFavor, GetFavorContent, DeleteFavor,

		AddLabel, DeleteLabel, ListLabels, ModifyLabelMembers,
	)
}
